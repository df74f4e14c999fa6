package main

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/x86emit/amd64"
	"github.com/colorfulnotion/x86emit/x86"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print condition codes, register classes and padding idioms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), tablesTree().String())
			return err
		},
	}
}

func tablesTree() treeprint.Tree {
	tree := treeprint.NewWithRoot("x86emit")

	conds := tree.AddBranch("conditions (short jcc / near jcc / setcc / cmovcc)")
	unsigned, signed := x86.CondTable(false), x86.CondTable(true)
	for c := x86.Cond(0); c < x86.NumConds; c++ {
		conds.AddNode(fmt.Sprintf("%-4s unsigned %s  signed %s", c, condForms(unsigned[c]), condForms(signed[c])))
	}

	regs := tree.AddBranch("registers")
	ia32 := regs.AddBranch("ia-32")
	ia32.AddNode("scratch: " + joinRegs32(x86.ScratchMask))
	ia32.AddNode("callee-saved: " + joinRegs32(x86.CalleeSavedMask))
	x64 := regs.AddBranch("x86-64 (System V)")
	x64.AddNode("scratch: " + joinRegs64(amd64.ScratchMask))
	x64.AddNode("callee-saved: " + joinRegs64(amd64.CalleeSavedMask))
	var args []string
	for _, r := range amd64.ArgRegs {
		args = append(args, r.String())
	}
	x64.AddNode("arguments: " + strings.Join(args, " "))

	pad := tree.AddBranch("padding")
	for n := 1; n <= 7; n++ {
		code := x86.PaddingBytes(n)
		var text []string
		for _, in := range x86.DisassembleInstructions(code, 32) {
			text = append(text, in.Text())
		}
		pad.AddNode(fmt.Sprintf("%d: %-20s %s", n, fmt.Sprintf("% x", code), strings.Join(text, "; ")))
	}
	return tree
}

func condForms(short byte) string {
	return fmt.Sprintf("%02x/0f %02x/0f %02x/0f %02x",
		short, short+x86.X86_CC_NEAR_DELTA, short+x86.X86_CC_SETCC_DELTA, short-x86.X86_CC_CMOV_DELTA)
}

func joinRegs32(mask uint32) string {
	var names []string
	for r := x86.Reg(0); r < x86.NumRegs; r++ {
		if mask&(uint32(1)<<r) != 0 {
			names = append(names, r.String())
		}
	}
	return strings.Join(names, " ")
}

func joinRegs64(mask uint32) string {
	var names []string
	for r := amd64.Reg(0); r < amd64.NumRegs; r++ {
		if mask&(uint32(1)<<r) != 0 {
			names = append(names, r.String())
		}
	}
	return strings.Join(names, " ")
}
