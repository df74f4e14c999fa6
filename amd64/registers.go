// Package amd64 extends the IA-32 encoder to the 64-bit register file.
//
// Addressing bytes are produced by the x86 package from the low three bits of
// each register; this package adds the REX prefix that carries the fourth bit
// and the 64-bit operand size. Branches, calls and Patch are shared with x86
// since their encodings are identical in 64-bit mode.
package amd64

import (
	"strings"

	"github.com/colorfulnotion/x86emit/x86"
)

// Reg is an x86-64 general purpose register, 0-15.
type Reg byte

const (
	RAX Reg = iota // return value
	RCX            // arg 4
	RDX            // arg 3
	RBX
	RSP
	RBP
	RSI // arg 2
	RDI // arg 1
	R8  // arg 5
	R9  // arg 6
	R10
	R11
	R12 // needs a SIB byte as base, like RSP
	R13 // needs a displacement as base, like RBP
	R14
	R15

	NumRegs = 16
)

// System V register classes.
const (
	ScratchMask uint32 = 1<<RAX | 1<<RCX | 1<<RDX | 1<<RSI | 1<<RDI |
		1<<R8 | 1<<R9 | 1<<R10 | 1<<R11
	CalleeSavedMask uint32 = 1<<RBX | 1<<RBP | 1<<R12 | 1<<R13 | 1<<R14 | 1<<R15
)

// ArgRegs are the integer argument registers in order.
var ArgRegs = []Reg{RDI, RSI, RDX, RCX, R8, R9}

var regNames = [NumRegs]string{
	"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

func (r Reg) String() string {
	if r < NumRegs {
		return regNames[r]
	}
	return "reg?"
}

// RegBits is the 3-bit code placed in ModRM/SIB.
func (r Reg) RegBits() byte { return byte(r) & 7 }

// REXBit is 1 for R8-R15.
func (r Reg) REXBit() byte { return byte(r) >> 3 & 1 }

// low is the register as seen by the 32-bit addressing encoder.
func (r Reg) low() x86.Reg { return x86.Reg(r.RegBits()) }

func ParseReg(name string) (Reg, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range regNames {
		if n == name {
			return Reg(i), true
		}
	}
	return 0, false
}

func IsScratch(r Reg) bool {
	return r < NumRegs && ScratchMask&(uint32(1)<<r) != 0
}

func IsCalleeSaved(r Reg) bool {
	return r < NumRegs && CalleeSavedMask&(uint32(1)<<r) != 0
}

func checkReg(op string, regs ...Reg) {
	for _, r := range regs {
		if r >= NumRegs {
			fail(op, "register %d out of range", r)
		}
	}
}
