package x86

// AddressByte writes a ModRM or SIB byte: [mod:2][reg:3][rm:3].
func AddressByte(s Sink, mod, reg, rm byte) {
	s.Append((mod&3)<<6 | (reg&7)<<3 | rm&7)
}

// RegEmit encodes a register-direct operand. r is the reg field, either a
// register or a /digit sub-opcode.
func RegEmit(s Sink, r byte, reg Reg) {
	AddressByte(s, X86_MOD_REGISTER, r, byte(reg))
}

// MemEmit encodes an absolute [disp32] operand.
func MemEmit(s Sink, r byte, disp int32) {
	AddressByte(s, X86_MOD_INDIRECT, r, X86_RM_DISP32)
	EmitImm32(s, disp)
}

// MembaseEmit encodes [base + disp] with the shortest displacement.
//
// ESP as base always needs a SIB byte. EBP with a zero displacement is
// encoded with an explicit disp8 of 0 because mod=00 rm=101 means disp32.
func MembaseEmit(s Sink, r byte, base Reg, disp int32) {
	if base == NoBaseReg {
		MemEmit(s, r, disp)
		return
	}
	if base&7 == ESP {
		switch {
		case disp == 0:
			AddressByte(s, X86_MOD_INDIRECT, r, X86_RM_SIB)
			AddressByte(s, 0, X86_SIB_NOINDEX, byte(ESP))
		case IsImm8(disp):
			AddressByte(s, X86_MOD_INDIRECT_DISP8, r, X86_RM_SIB)
			AddressByte(s, 0, X86_SIB_NOINDEX, byte(ESP))
			EmitImm8(s, disp)
		default:
			AddressByte(s, X86_MOD_INDIRECT_DISP32, r, X86_RM_SIB)
			AddressByte(s, 0, X86_SIB_NOINDEX, byte(ESP))
			EmitImm32(s, disp)
		}
		return
	}
	if disp == 0 && base&7 != EBP {
		AddressByte(s, X86_MOD_INDIRECT, r, byte(base))
		return
	}
	if IsImm8(disp) {
		AddressByte(s, X86_MOD_INDIRECT_DISP8, r, byte(base))
		EmitImm8(s, disp)
	} else {
		AddressByte(s, X86_MOD_INDIRECT_DISP32, r, byte(base))
		EmitImm32(s, disp)
	}
}

// MemindexEmit encodes [base + index<<shift + disp]. With NoBaseReg the
// operand is [index<<shift + disp32].
func MemindexEmit(s Sink, r byte, base Reg, disp int32, index Reg, shift byte) {
	switch {
	case base == NoBaseReg:
		AddressByte(s, X86_MOD_INDIRECT, r, X86_RM_SIB)
		AddressByte(s, shift, byte(index), X86_SIB_NOBASE)
		EmitImm32(s, disp)
	case disp == 0 && base&7 != EBP:
		AddressByte(s, X86_MOD_INDIRECT, r, X86_RM_SIB)
		AddressByte(s, shift, byte(index), byte(base))
	case IsImm8(disp):
		AddressByte(s, X86_MOD_INDIRECT_DISP8, r, X86_RM_SIB)
		AddressByte(s, shift, byte(index), byte(base))
		EmitImm8(s, disp)
	default:
		AddressByte(s, X86_MOD_INDIRECT_DISP32, r, X86_RM_SIB)
		AddressByte(s, shift, byte(index), byte(base))
		EmitImm32(s, disp)
	}
}

// RegpEmit encodes the register-indirect operand [reg].
func RegpEmit(s Sink, r byte, reg Reg) {
	MembaseEmit(s, r, reg, 0)
}

// Address describes a memory operand: absolute, base+disp, or base+index*scale+disp.
type Address struct {
	Base  Reg // NoBaseReg when absent
	Index Reg // NoBaseReg when absent
	Shift byte
	Disp  int32
}

// Abs is the absolute address [disp].
func Abs(disp int32) Address {
	return Address{Base: NoBaseReg, Index: NoBaseReg, Disp: disp}
}

// Base is [base + disp].
func Base(base Reg, disp int32) Address {
	return Address{Base: base, Index: NoBaseReg, Disp: disp}
}

// Index is [base + index<<shift + disp]; base may be NoBaseReg.
func Index(base Reg, disp int32, index Reg, shift byte) Address {
	return Address{Base: base, Index: index, Shift: shift, Disp: disp}
}

// IsAbsolute reports whether a has neither base nor index.
func (a Address) IsAbsolute() bool {
	return a.Base == NoBaseReg && a.Index == NoBaseReg
}

// IsIndexed reports whether a carries an index register.
func (a Address) IsIndexed() bool {
	return a.Index != NoBaseReg
}

// EmitAddress encodes a with the matching addressing form.
func EmitAddress(s Sink, r byte, a Address) {
	if a.Shift > 3 {
		fatal("address", "scale shift %d out of range", a.Shift)
	}
	switch {
	case a.IsIndexed():
		MemindexEmit(s, r, a.Base, a.Disp, a.Index, a.Shift)
	case a.Base == NoBaseReg:
		MemEmit(s, r, a.Disp)
	default:
		MembaseEmit(s, r, a.Base, a.Disp)
	}
}
