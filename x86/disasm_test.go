package x86

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/arch/x86/x86asm"
)

// Every encoding must decode back as exactly one instruction of the
// expected operation covering all emitted bytes.
func TestDecodeCrossCheck(t *testing.T) {
	cases := []struct {
		op   string
		emit func(s Sink)
	}{
		{"MOV", func(s Sink) { MovRegImm(s, EDI, -5) }},
		{"MOV", func(s Sink) { MovRegMembase(s, EAX, EBP, 0, 4) }},
		{"MOV", func(s Sink) { MovMembaseReg(s, ESP, 0x1000, EDX, 2) }},
		{"MOV", func(s Sink) { MovMemindexReg(s, NoBaseReg, 0x40, ECX, 3, EBX, 1) }},
		{"MOV", func(s Sink) { MovMembaseImm(s, EBP, -8, 0x1234, 2) }},
		{"ADD", func(s Sink) { AluRegImm(s, ADD, EAX, 0x10000) }},
		{"SUB", func(s Sink) { AluRegImm(s, SUB, ESP, 16) }},
		{"CMP", func(s Sink) { AluReg16Imm(s, CMP, EBX, 0x1234) }},
		{"XOR", func(s Sink) { AluMemindexReg(s, XOR, EBP, 0, ESI, 2, EAX) }},
		{"AND", func(s Sink) { AluMembase8Imm(s, AND, ESP, 4, 0x0F) }},
		{"ADD", func(s Sink) { AluReg8Reg8(s, ADD, EAX, EBX, true, true) }},
		{"TEST", func(s Sink) { TestRegImm(s, EAX, 1) }},
		{"TEST", func(s Sink) { TestMemImm8(s, 0x40, 1) }},
		{"INC", func(s Sink) { IncMembase(s, ESP, 0) }},
		{"NEG", func(s Sink) { NegReg(s, ECX) }},
		{"SHL", func(s Sink) { ShiftRegImm(s, SHL, EAX, 1) }},
		{"SAR", func(s Sink) { ShiftMembaseImm(s, SAR, EBP, 8, 3) }},
		{"SHRD", func(s Sink) { ShrdRegImm(s, EAX, EDX, 3) }},
		{"SHLD", func(s Sink) { ShldReg(s, EDX, EAX) }},
		{"IMUL", func(s Sink) { ImulRegRegImm(s, EAX, ECX, 1000) }},
		{"IMUL", func(s Sink) { ImulRegReg(s, EAX, ECX) }},
		{"DIV", func(s Sink) { DivReg(s, ECX, false) }},
		{"IDIV", func(s Sink) { DivMembase(s, EBP, 8, true) }},
		{"CDQ", Cdq},
		{"LEA", func(s Sink) { LeaMemindex(s, EAX, EBP, 0, EBP, 1) }},
		{"MOVZX", func(s Sink) { WidenReg(s, EAX, EBX, false, false) }},
		{"MOVSX", func(s Sink) { WidenMembase(s, EAX, ESP, 0, true, true) }},
		{"XCHG", func(s Sink) { XchgRegReg(s, EBX, ECX, 4) }},
		{"CMPXCHG", func(s Sink) { CmpxchgMembaseReg(s, ESI, 0, ECX) }},
		{"PUSH", func(s Sink) { PushImm(s, 0x12345) }},
		{"PUSH", func(s Sink) { PushMemindex(s, EAX, 0, ECX, 2) }},
		{"POP", func(s Sink) { PopMembase(s, EBP, -4) }},
		{"SETE", func(s Sink) { SetReg(s, CondEQ, EAX, true) }},
		{"SETB", func(s Sink) { SetMembase(s, CondLT, EBP, -1, false) }},
		{"CMOVL", func(s Sink) { CmovReg(s, CondLT, true, EAX, ECX) }},
		{"CMOVA", func(s Sink) { CmovMembase(s, CondGT, false, EAX, ESI, 4) }},
		{"JE", func(s Sink) { BranchDisp(s, CondEQ, 10, true) }},
		{"JGE", func(s Sink) { BranchDisp(s, CondGE, 1000, true) }},
		{"JAE", func(s Sink) { BranchDisp(s, CondGE, 1000, false) }},
		{"JMP", func(s Sink) { JumpDisp(s, -1000) }},
		{"JMP", func(s Sink) { JumpMembase(s, EAX, 4) }},
		{"CALL", func(s Sink) { CallImm(s, 0) }},
		{"CALL", func(s Sink) { CallReg(s, EDX) }},
		{"LOOP", func(s Sink) { Loop(s, -2) }},
		{"RET", func(s Sink) { RetImm(s, 12) }},
		{"ENTER", func(s Sink) { Enter(s, 64) }},
		{"LEAVE", Leave},
		{"FLD", func(s Sink) { FldMembase(s, EBP, -8, true) }},
		{"FSTP", func(s Sink) { FstMembase(s, EBP, -8, true, true) }},
		{"FILD", func(s Sink) { Fild(s, 0x40, true) }},
		{"FCHS", Fchs},
		{"FSQRT", Fsqrt},
		{"RDTSC", Rdtsc},
	}
	for _, tc := range cases {
		code := enc(tc.emit)
		inst, err := x86asm.Decode(code, 32)
		require.NoError(t, err, "% X", code)
		assert.Equal(t, tc.op, inst.Op.String(), "% X", code)
		assert.Equal(t, len(code), inst.Len, "% X decoded as %s", code, inst)
	}
}

func TestDisassembleListing(t *testing.T) {
	code := enc(func(s Sink) {
		Prolog(s, 8, 1<<EBX)
		MovRegImm(s, EAX, 42)
		Epilog(s, 1<<EBX)
	})
	insts := DisassembleInstructions(code, 32)
	require.Len(t, insts, 6)
	assert.Equal(t, 0, insts[0].Offset)
	assert.Equal(t, 4, insts[1].Offset)
	for _, d := range insts {
		require.NoError(t, d.Err)
	}

	text := Disassemble(code, 32)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "0x0000: c8 08 00 00"), lines[0])
	assert.Contains(t, lines[2], "mov")
	assert.Contains(t, lines[5], "ret")
}

func TestDisassembleTruncated(t *testing.T) {
	insts := DisassembleInstructions([]byte{0xE9, 0x00}, 32)
	require.Len(t, insts, 2)
	assert.Error(t, insts[0].Err)
	assert.Equal(t, "db 0xe9", insts[0].Text())
	assert.Equal(t, 1, insts[1].Offset)
}
