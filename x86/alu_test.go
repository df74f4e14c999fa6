package x86

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAluEncodings(t *testing.T) {
	runEncCases(t, []encCase{
		{"add eax, 1", func(s Sink) { AluRegImm(s, ADD, EAX, 1) }, []byte{0x05, 0x01, 0x00, 0x00, 0x00}},
		{"cmp eax, -1", func(s Sink) { AluRegImm(s, CMP, EAX, -1) }, []byte{0x3D, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"sub ecx, 8", func(s Sink) { AluRegImm(s, SUB, ECX, 8) }, []byte{0x83, 0xE9, 0x08}},
		{"cmp edx, 1000", func(s Sink) { AluRegImm(s, CMP, EDX, 1000) }, []byte{0x81, 0xFA, 0xE8, 0x03, 0x00, 0x00}},
		{"add cx, 0x1234", func(s Sink) { AluReg16Imm(s, ADD, ECX, 0x1234) }, []byte{0x66, 0x81, 0xC1, 0x34, 0x12}},
		{"and cx, 7", func(s Sink) { AluReg16Imm(s, AND, ECX, 7) }, []byte{0x66, 0x83, 0xE1, 0x07}},
		{"or ax, 2", func(s Sink) { AluReg16Imm(s, OR, EAX, 2) }, []byte{0x66, 0x0D, 0x02, 0x00}},
		{"add [0x1000], 1", func(s Sink) { AluMemImm(s, ADD, 0x1000, 1) }, []byte{0x83, 0x05, 0x00, 0x10, 0x00, 0x00, 0x01}},
		{"and [ebp-4], 0xff00", func(s Sink) { AluMembaseImm(s, AND, EBP, -4, 0xFF00) }, []byte{0x81, 0x65, 0xFC, 0x00, 0xFF, 0x00, 0x00}},
		{"xor [eax+ecx*4], 3", func(s Sink) { AluMemindexImm(s, XOR, EAX, 0, ECX, 2, 3) }, []byte{0x83, 0x34, 0x88, 0x03}},
		{"cmp byte [esi], 9", func(s Sink) { AluMembase8Imm(s, CMP, ESI, 0, 9) }, []byte{0x80, 0x3E, 0x09}},
		{"add [0x10], eax", func(s Sink) { AluMemReg(s, ADD, 0x10, EAX) }, []byte{0x01, 0x05, 0x10, 0x00, 0x00, 0x00}},
		{"add [ebp+8], eax", func(s Sink) { AluMembaseReg(s, ADD, EBP, 8, EAX) }, []byte{0x01, 0x45, 0x08}},
		{"sub [ebx+edi], edx", func(s Sink) { AluMemindexReg(s, SUB, EBX, 0, EDI, 0, EDX) }, []byte{0x29, 0x14, 0x3B}},
		{"xor eax, eax", func(s Sink) { AluRegReg(s, XOR, EAX, EAX) }, []byte{0x33, 0xC0}},
		{"add ecx, edx", func(s Sink) { AluRegReg(s, ADD, ECX, EDX) }, []byte{0x03, 0xCA}},
		{"adc eax, [0x20]", func(s Sink) { AluRegMem(s, ADC, EAX, 0x20) }, []byte{0x13, 0x05, 0x20, 0x00, 0x00, 0x00}},
		{"cmp eax, [esp+4]", func(s Sink) { AluRegMembase(s, CMP, EAX, ESP, 4) }, []byte{0x3B, 0x44, 0x24, 0x04}},
		{"sbb ecx, [eax+edx*8]", func(s Sink) { AluRegMemindex(s, SBB, ECX, EAX, 0, EDX, 3) }, []byte{0x1B, 0x0C, 0xD0}},
		{"add ah, cl", func(s Sink) { AluReg8Reg8(s, ADD, EAX, ECX, true, false) }, []byte{0x02, 0xE1}},
		{"xor bl, dh", func(s Sink) { AluReg8Reg8(s, XOR, EBX, EDX, false, true) }, []byte{0x32, 0xDE}},
	})
}

func TestAluContract(t *testing.T) {
	requirePanics(t, func() { enc(func(s Sink) { AluReg16Imm(s, ADD, ECX, 70000) }) })
	requirePanics(t, func() { enc(func(s Sink) { AluReg8Reg8(s, ADD, ESI, ECX, false, false) }) })
	requirePanics(t, func() { enc(func(s Sink) { AluRegReg(s, AluOp(8), EAX, ECX) }) })

	// the loose 16-bit range is accepted
	assert.Equal(t, []byte{0x66, 0x81, 0xC1, 0xFF, 0xFF}, enc(func(s Sink) { AluReg16Imm(s, ADD, ECX, 65535) }))
	assert.NotPanics(t, func() { enc(func(s Sink) { AluReg16Imm(s, ADD, ECX, -40000) }) })
}

func TestAluOpNames(t *testing.T) {
	for op := ADD; op <= CMP; op++ {
		got, ok := ParseAluOp(op.String())
		assert.True(t, ok)
		assert.Equal(t, op, got)
	}
	_, ok := ParseAluOp("mov")
	assert.False(t, ok)
}

func TestTestAndUnary(t *testing.T) {
	runEncCases(t, []encCase{
		{"test eax, 1", func(s Sink) { TestRegImm(s, EAX, 1) }, []byte{0xA9, 0x01, 0x00, 0x00, 0x00}},
		{"test ecx, 1", func(s Sink) { TestRegImm(s, ECX, 1) }, []byte{0xF7, 0xC1, 0x01, 0x00, 0x00, 0x00}},
		{"test byte [0x40], 1", func(s Sink) { TestMemImm8(s, 0x40, 1) }, []byte{0xF6, 0x05, 0x40, 0x00, 0x00, 0x00, 0x01}},
		{"test [0x40], 2", func(s Sink) { TestMemImm(s, 0x40, 2) }, []byte{0xF7, 0x05, 0x40, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}},
		{"test [ebx+4], 2", func(s Sink) { TestMembaseImm(s, EBX, 4, 2) }, []byte{0xF7, 0x43, 0x04, 0x02, 0x00, 0x00, 0x00}},
		{"test eax, ecx", func(s Sink) { TestRegReg(s, EAX, ECX) }, []byte{0x85, 0xC8}},
		{"test [0x40], edx", func(s Sink) { TestMemReg(s, 0x40, EDX) }, []byte{0x85, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"test [esi], edx", func(s Sink) { TestMembaseReg(s, ESI, 0, EDX) }, []byte{0x85, 0x16}},
		{"inc ecx", func(s Sink) { IncReg(s, ECX) }, []byte{0x41}},
		{"dec edi", func(s Sink) { DecReg(s, EDI) }, []byte{0x4F}},
		{"inc [ebp-4]", func(s Sink) { IncMembase(s, EBP, -4) }, []byte{0xFF, 0x45, 0xFC}},
		{"dec [0x40]", func(s Sink) { DecMem(s, 0x40) }, []byte{0xFF, 0x0D, 0x40, 0x00, 0x00, 0x00}},
		{"inc [0x40]", func(s Sink) { IncMem(s, 0x40) }, []byte{0xFF, 0x05, 0x40, 0x00, 0x00, 0x00}},
		{"dec [eax]", func(s Sink) { DecMembase(s, EAX, 0) }, []byte{0xFF, 0x08}},
		{"not edx", func(s Sink) { NotReg(s, EDX) }, []byte{0xF7, 0xD2}},
		{"not [0x40]", func(s Sink) { NotMem(s, 0x40) }, []byte{0xF7, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"not [ecx+1]", func(s Sink) { NotMembase(s, ECX, 1) }, []byte{0xF7, 0x51, 0x01}},
		{"neg eax", func(s Sink) { NegReg(s, EAX) }, []byte{0xF7, 0xD8}},
		{"neg [0x40]", func(s Sink) { NegMem(s, 0x40) }, []byte{0xF7, 0x1D, 0x40, 0x00, 0x00, 0x00}},
		{"neg [esp]", func(s Sink) { NegMembase(s, ESP, 0) }, []byte{0xF7, 0x1C, 0x24}},
	})
}

func TestShiftEncodings(t *testing.T) {
	runEncCases(t, []encCase{
		{"shl eax, 1", func(s Sink) { ShiftRegImm(s, SHL, EAX, 1) }, []byte{0xD1, 0xE0}},
		{"shr ecx, 4", func(s Sink) { ShiftRegImm(s, SHR, ECX, 4) }, []byte{0xC1, 0xE9, 0x04}},
		{"rol [0x40], 1", func(s Sink) { ShiftMemImm(s, ROL, 0x40, 1) }, []byte{0xD1, 0x05, 0x40, 0x00, 0x00, 0x00}},
		{"sar [ebp+8], 2", func(s Sink) { ShiftMembaseImm(s, SAR, EBP, 8, 2) }, []byte{0xC1, 0x7D, 0x08, 0x02}},
		{"sar edx, cl", func(s Sink) { ShiftReg(s, SAR, EDX) }, []byte{0xD3, 0xFA}},
		{"rcl [0x40], cl", func(s Sink) { ShiftMem(s, RCL, 0x40) }, []byte{0xD3, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"ror [eax], cl", func(s Sink) { ShiftMembase(s, ROR, EAX, 0) }, []byte{0xD3, 0x08}},
		{"shrd eax, edx, cl", func(s Sink) { ShrdReg(s, EAX, EDX) }, []byte{0x0F, 0xAD, 0xD0}},
		{"shrd eax, edx, 3", func(s Sink) { ShrdRegImm(s, EAX, EDX, 3) }, []byte{0x0F, 0xAC, 0xD0, 0x03}},
		{"shld edx, eax, cl", func(s Sink) { ShldReg(s, EDX, EAX) }, []byte{0x0F, 0xA5, 0xC2}},
		{"shld edx, eax, 5", func(s Sink) { ShldRegImm(s, EDX, EAX, 5) }, []byte{0x0F, 0xA4, 0xC2, 0x05}},
	})
	assert.Equal(t, SHL, SAL)
	requirePanics(t, func() { enc(func(s Sink) { ShiftReg(s, ShiftOp(6), EAX) }) })
}

func TestMulDivEncodings(t *testing.T) {
	runEncCases(t, []encCase{
		{"mul ecx", func(s Sink) { MulReg(s, ECX, false) }, []byte{0xF7, 0xE1}},
		{"imul ecx", func(s Sink) { MulReg(s, ECX, true) }, []byte{0xF7, 0xE9}},
		{"mul [0x40]", func(s Sink) { MulMem(s, 0x40, false) }, []byte{0xF7, 0x25, 0x40, 0x00, 0x00, 0x00}},
		{"imul [ebp-8]", func(s Sink) { MulMembase(s, EBP, -8, true) }, []byte{0xF7, 0x6D, 0xF8}},
		{"imul eax, ecx", func(s Sink) { ImulRegReg(s, EAX, ECX) }, []byte{0x0F, 0xAF, 0xC1}},
		{"imul edx, [0x40]", func(s Sink) { ImulRegMem(s, EDX, 0x40) }, []byte{0x0F, 0xAF, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"imul eax, [esi+4]", func(s Sink) { ImulRegMembase(s, EAX, ESI, 4) }, []byte{0x0F, 0xAF, 0x46, 0x04}},
		{"imul eax, ecx, 10", func(s Sink) { ImulRegRegImm(s, EAX, ECX, 10) }, []byte{0x6B, 0xC1, 0x0A}},
		{"imul eax, ecx, 1000", func(s Sink) { ImulRegRegImm(s, EAX, ECX, 1000) }, []byte{0x69, 0xC1, 0xE8, 0x03, 0x00, 0x00}},
		{"imul eax, [0x40], 3", func(s Sink) { ImulRegMemImm(s, EAX, 0x40, 3) }, []byte{0x6B, 0x05, 0x40, 0x00, 0x00, 0x00, 0x03}},
		{"imul ecx, [ebx], 300", func(s Sink) { ImulRegMembaseImm(s, ECX, EBX, 0, 300) }, []byte{0x69, 0x0B, 0x2C, 0x01, 0x00, 0x00}},
		{"div ecx", func(s Sink) { DivReg(s, ECX, false) }, []byte{0xF7, 0xF1}},
		{"idiv ecx", func(s Sink) { DivReg(s, ECX, true) }, []byte{0xF7, 0xF9}},
		{"div [0x40]", func(s Sink) { DivMem(s, 0x40, false) }, []byte{0xF7, 0x35, 0x40, 0x00, 0x00, 0x00}},
		{"idiv [ebp+8]", func(s Sink) { DivMembase(s, EBP, 8, true) }, []byte{0xF7, 0x7D, 0x08}},
		{"cdq", Cdq, []byte{0x99}},
	})
}
