package asm

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/x86emit/x86"
)

// Kind tags the variant held by an Operand.
type Kind uint8

const (
	KindNone Kind = iota
	KindReg
	KindImm
	KindMem
)

// Operand is a register, an immediate or a memory reference. The zero
// value is KindNone and is rejected by every instruction.
type Operand struct {
	kind Kind
	reg  x86.Reg
	imm  int32
	mem  x86.Address
}

func Reg(r x86.Reg) Operand { return Operand{kind: KindReg, reg: r} }

func Imm(v int32) Operand { return Operand{kind: KindImm, imm: v} }

func Mem(a x86.Address) Operand { return Operand{kind: KindMem, mem: a} }

// Abs is the absolute memory operand [disp].
func Abs(disp int32) Operand { return Mem(x86.Abs(disp)) }

// Base is [base+disp].
func Base(base x86.Reg, disp int32) Operand { return Mem(x86.Base(base, disp)) }

// Index is [base + index<<shift + disp]; base may be x86.NoBaseReg.
func Index(base x86.Reg, disp int32, index x86.Reg, shift byte) Operand {
	return Mem(x86.Index(base, disp, index, shift))
}

func (o Operand) Kind() Kind { return o.kind }

func (o Operand) IsReg() bool { return o.kind == KindReg }
func (o Operand) IsImm() bool { return o.kind == KindImm }
func (o Operand) IsMem() bool { return o.kind == KindMem }

// Register returns the register of a KindReg operand.
func (o Operand) Register() x86.Reg { return o.reg }

// Value returns the immediate of a KindImm operand.
func (o Operand) Value() int32 { return o.imm }

// Address returns the memory reference of a KindMem operand.
func (o Operand) Address() x86.Address { return o.mem }

func (o Operand) String() string {
	switch o.kind {
	case KindReg:
		return o.reg.String()
	case KindImm:
		if o.imm < 0 {
			return fmt.Sprintf("-0x%x", -int64(o.imm))
		}
		return fmt.Sprintf("0x%x", o.imm)
	case KindMem:
		return formatAddress(o.mem)
	}
	return "none"
}

func formatAddress(a x86.Address) string {
	var parts []string
	if a.Base != x86.NoBaseReg {
		parts = append(parts, a.Base.String())
	}
	if a.Index != x86.NoBaseReg {
		parts = append(parts, fmt.Sprintf("%s*%d", a.Index, 1<<a.Shift))
	}
	s := strings.Join(parts, "+")
	switch {
	case s == "":
		s = fmt.Sprintf("0x%x", uint32(a.Disp))
	case a.Disp > 0:
		s += fmt.Sprintf("+0x%x", a.Disp)
	case a.Disp < 0:
		s += fmt.Sprintf("-0x%x", -int64(a.Disp))
	}
	return "[" + s + "]"
}
