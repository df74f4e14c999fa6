package x86

import "strings"

// Reg is an IA-32 general purpose register number as used in ModRM/SIB fields.
type Reg byte

const (
	EAX Reg = 0 // accumulator, return value
	ECX Reg = 1 // shift count (CL)
	EDX Reg = 2 // high half of mul/div
	EBX Reg = 3
	ESP Reg = 4 // rm=100 selects SIB
	EBP Reg = 5 // mod=00 rm=101 selects disp32
	ESI Reg = 6
	EDI Reg = 7

	NumRegs = 8

	// NoBaseReg marks a memory operand without a base register.
	NoBaseReg Reg = 0xFF
)

// Register classes of the 32-bit calling convention.
const (
	ScratchMask     uint32 = 1<<EAX | 1<<ECX | 1<<EDX
	CalleeSavedMask uint32 = 1<<EBX | 1<<EBP | 1<<ESI | 1<<EDI
)

var regNames = [NumRegs]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}

var byteRegNames = [NumRegs]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}

func (r Reg) String() string {
	if r == NoBaseReg {
		return "nobase"
	}
	if r < NumRegs {
		return regNames[r]
	}
	return "reg?"
}

// ByteName is the name of the 8-bit register selected by r in a byte operation.
func (r Reg) ByteName() string {
	if r < NumRegs {
		return byteRegNames[r]
	}
	return "reg?"
}

// ParseReg looks up a register by its 32-bit name.
func ParseReg(name string) (Reg, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range regNames {
		if n == name {
			return Reg(i), true
		}
	}
	return 0, false
}

// IsByteReg reports whether r has an addressable low byte (AL, CL, DL, BL).
func IsByteReg(r Reg) bool {
	return r < 4
}

// IsScratch reports whether r may be clobbered by a call.
func IsScratch(r Reg) bool {
	return r < NumRegs && ScratchMask&(uint32(1)<<r) != 0
}

// IsCalleeSaved reports whether a callee must preserve r.
func IsCalleeSaved(r Reg) bool {
	return r < NumRegs && CalleeSavedMask&(uint32(1)<<r) != 0
}

func checkByteReg(op string, r Reg) {
	if !IsByteReg(r) {
		fatal(op, "register %s is not byte addressable", r)
	}
}
