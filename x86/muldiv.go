package x86

func signedDigit(base byte, signed bool) byte {
	if signed {
		return base + 1
	}
	return base
}

// MulReg encodes the widening multiply `mul reg` (or `imul reg` when signed): EDX:EAX = EAX * reg.
func MulReg(s Sink, reg Reg, signed bool) {
	s.Append(X86_OP_GROUP3_RM)
	RegEmit(s, signedDigit(X86_REG_MUL, signed), reg)
}

func MulMem(s Sink, mem int32, signed bool) {
	s.Append(X86_OP_GROUP3_RM)
	MemEmit(s, signedDigit(X86_REG_MUL, signed), mem)
}

func MulMembase(s Sink, base Reg, disp int32, signed bool) {
	s.Append(X86_OP_GROUP3_RM)
	MembaseEmit(s, signedDigit(X86_REG_MUL, signed), base, disp)
}

// ImulRegReg encodes the truncating `imul dreg, reg`.
func ImulRegReg(s Sink, dreg, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_IMUL_R_RM)
	RegEmit(s, byte(dreg), reg)
}

func ImulRegMem(s Sink, reg Reg, mem int32) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_IMUL_R_RM)
	MemEmit(s, byte(reg), mem)
}

func ImulRegMembase(s Sink, reg Reg, base Reg, disp int32) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_IMUL_R_RM)
	MembaseEmit(s, byte(reg), base, disp)
}

func imulImm(s Sink, src func(), imm int32) {
	if IsImm8(imm) {
		s.Append(X86_OP_IMUL_R_RM_IMM8)
		src()
		EmitImm8(s, imm)
	} else {
		s.Append(X86_OP_IMUL_R_RM_IMM32)
		src()
		EmitImm32(s, imm)
	}
}

// ImulRegRegImm encodes `imul dreg, reg, imm`.
func ImulRegRegImm(s Sink, dreg, reg Reg, imm int32) {
	imulImm(s, func() { RegEmit(s, byte(dreg), reg) }, imm)
}

func ImulRegMemImm(s Sink, reg Reg, mem int32, imm int32) {
	imulImm(s, func() { MemEmit(s, byte(reg), mem) }, imm)
}

func ImulRegMembaseImm(s Sink, reg Reg, base Reg, disp int32, imm int32) {
	imulImm(s, func() { MembaseEmit(s, byte(reg), base, disp) }, imm)
}

// DivReg encodes `div reg` (or `idiv reg`): EDX:EAX / reg.
func DivReg(s Sink, reg Reg, signed bool) {
	s.Append(X86_OP_GROUP3_RM)
	RegEmit(s, signedDigit(X86_REG_DIV, signed), reg)
}

func DivMem(s Sink, mem int32, signed bool) {
	s.Append(X86_OP_GROUP3_RM)
	MemEmit(s, signedDigit(X86_REG_DIV, signed), mem)
}

func DivMembase(s Sink, base Reg, disp int32, signed bool) {
	s.Append(X86_OP_GROUP3_RM)
	MembaseEmit(s, signedDigit(X86_REG_DIV, signed), base, disp)
}

// Cdq sign-extends EAX into EDX.
func Cdq(s Sink) {
	s.Append(X86_OP_CDQ)
}
