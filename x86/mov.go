package x86

// movOpcode writes the optional 0x66 prefix and returns the byte or word
// opcode for an operand size of 1, 2 or 4.
func movOpcode(s Sink, op string, size int, byteOp, wordOp byte) byte {
	switch size {
	case 1:
		return byteOp
	case 2:
		s.Append(X86_OP_PREFIX_66)
		return wordOp
	case 4:
		return wordOp
	}
	fatal(op, "invalid operand size %d", size)
	return 0
}

func checkSizedReg(op string, size int, regs ...Reg) {
	if size != 1 {
		return
	}
	for _, r := range regs {
		checkByteReg(op, r)
	}
}

// MovMemReg stores reg into [mem].
func MovMemReg(s Sink, mem int32, reg Reg, size int) {
	checkSizedReg("mov_mem_reg", size, reg)
	s.Append(movOpcode(s, "mov_mem_reg", size, X86_OP_MOV_RM8_R8, X86_OP_MOV_RM_R))
	MemEmit(s, byte(reg), mem)
}

// MovRegpReg stores reg into [regp].
func MovRegpReg(s Sink, regp Reg, reg Reg, size int) {
	checkSizedReg("mov_regp_reg", size, reg)
	s.Append(movOpcode(s, "mov_regp_reg", size, X86_OP_MOV_RM8_R8, X86_OP_MOV_RM_R))
	RegpEmit(s, byte(reg), regp)
}

func MovMembaseReg(s Sink, base Reg, disp int32, reg Reg, size int) {
	checkSizedReg("mov_membase_reg", size, reg)
	s.Append(movOpcode(s, "mov_membase_reg", size, X86_OP_MOV_RM8_R8, X86_OP_MOV_RM_R))
	MembaseEmit(s, byte(reg), base, disp)
}

func MovMemindexReg(s Sink, base Reg, disp int32, index Reg, shift byte, reg Reg, size int) {
	checkSizedReg("mov_memindex_reg", size, reg)
	s.Append(movOpcode(s, "mov_memindex_reg", size, X86_OP_MOV_RM8_R8, X86_OP_MOV_RM_R))
	MemindexEmit(s, byte(reg), base, disp, index, shift)
}

// MovRegReg copies reg into dreg.
func MovRegReg(s Sink, dreg, reg Reg, size int) {
	checkSizedReg("mov_reg_reg", size, dreg, reg)
	s.Append(movOpcode(s, "mov_reg_reg", size, X86_OP_MOV_R8_RM8, X86_OP_MOV_R_RM))
	RegEmit(s, byte(dreg), reg)
}

// MovRegMem loads [mem] into reg.
func MovRegMem(s Sink, reg Reg, mem int32, size int) {
	checkSizedReg("mov_reg_mem", size, reg)
	s.Append(movOpcode(s, "mov_reg_mem", size, X86_OP_MOV_R8_RM8, X86_OP_MOV_R_RM))
	MemEmit(s, byte(reg), mem)
}

func MovRegMembase(s Sink, reg Reg, base Reg, disp int32, size int) {
	checkSizedReg("mov_reg_membase", size, reg)
	s.Append(movOpcode(s, "mov_reg_membase", size, X86_OP_MOV_R8_RM8, X86_OP_MOV_R_RM))
	MembaseEmit(s, byte(reg), base, disp)
}

func MovRegMemindex(s Sink, reg Reg, base Reg, disp int32, index Reg, shift byte, size int) {
	checkSizedReg("mov_reg_memindex", size, reg)
	s.Append(movOpcode(s, "mov_reg_memindex", size, X86_OP_MOV_R8_RM8, X86_OP_MOV_R_RM))
	MemindexEmit(s, byte(reg), base, disp, index, shift)
}

// MovRegImm loads a 32-bit immediate: B8+r id.
func MovRegImm(s Sink, reg Reg, imm int32) {
	s.Append(X86_OP_MOV_R_IMM + byte(reg))
	EmitImm32(s, imm)
}

func movAddrImm(s Sink, op string, a Address, imm int32, size int) {
	switch size {
	case 1:
		s.Append(X86_OP_MOV_RM8_IMM8)
		EmitAddress(s, 0, a)
		EmitImm8(s, imm)
	case 2:
		emit(s, X86_OP_PREFIX_66, X86_OP_MOV_RM_IMM)
		EmitAddress(s, 0, a)
		EmitImm16(s, imm)
	case 4:
		s.Append(X86_OP_MOV_RM_IMM)
		EmitAddress(s, 0, a)
		EmitImm32(s, imm)
	default:
		fatal(op, "invalid operand size %d", size)
	}
}

// MovMemImm stores an immediate of the given size into [mem].
func MovMemImm(s Sink, mem int32, imm int32, size int) {
	movAddrImm(s, "mov_mem_imm", Abs(mem), imm, size)
}

func MovMembaseImm(s Sink, base Reg, disp int32, imm int32, size int) {
	movAddrImm(s, "mov_membase_imm", Base(base, disp), imm, size)
}

func MovMemindexImm(s Sink, base Reg, disp int32, index Reg, shift byte, imm int32, size int) {
	movAddrImm(s, "mov_memindex_imm", Index(base, disp, index, shift), imm, size)
}

func LeaMem(s Sink, reg Reg, mem int32) {
	s.Append(X86_OP_LEA)
	MemEmit(s, byte(reg), mem)
}

func LeaMembase(s Sink, reg Reg, base Reg, disp int32) {
	s.Append(X86_OP_LEA)
	MembaseEmit(s, byte(reg), base, disp)
}

func LeaMemindex(s Sink, reg Reg, base Reg, disp int32, index Reg, shift byte) {
	s.Append(X86_OP_LEA)
	MemindexEmit(s, byte(reg), base, disp, index, shift)
}

func widenOpcode(s Sink, signed, half bool) {
	op := byte(X86_OP2_MOVZX_RM8)
	if signed {
		op += 0x08
	}
	if half {
		op += 0x01
	}
	emit(s, X86_OP_PREFIX_0F, op)
}

// WidenReg zero or sign extends the low byte or word of reg into dreg
// (movzx/movsx). A byte source must be byte addressable.
func WidenReg(s Sink, dreg, reg Reg, signed, half bool) {
	if !half {
		checkByteReg("widen_reg", reg)
	}
	widenOpcode(s, signed, half)
	RegEmit(s, byte(dreg), reg)
}

func WidenMem(s Sink, dreg Reg, mem int32, signed, half bool) {
	widenOpcode(s, signed, half)
	MemEmit(s, byte(dreg), mem)
}

func WidenMembase(s Sink, dreg Reg, base Reg, disp int32, signed, half bool) {
	widenOpcode(s, signed, half)
	MembaseEmit(s, byte(dreg), base, disp)
}

func WidenMemindex(s Sink, dreg Reg, base Reg, disp int32, index Reg, shift byte, signed, half bool) {
	widenOpcode(s, signed, half)
	MemindexEmit(s, byte(dreg), base, disp, index, shift)
}

// XchgRegReg swaps two registers. Size 1 swaps their low bytes.
func XchgRegReg(s Sink, dreg, reg Reg, size int) {
	checkSizedReg("xchg_reg_reg", size, dreg, reg)
	s.Append(movOpcode(s, "xchg_reg_reg", size, X86_OP_XCHG_RM8_R8, X86_OP_XCHG_RM_R))
	RegEmit(s, byte(reg), dreg)
}

func XchgMemReg(s Sink, mem int32, reg Reg, size int) {
	checkSizedReg("xchg_mem_reg", size, reg)
	s.Append(movOpcode(s, "xchg_mem_reg", size, X86_OP_XCHG_RM8_R8, X86_OP_XCHG_RM_R))
	MemEmit(s, byte(reg), mem)
}

func XchgMembaseReg(s Sink, base Reg, disp int32, reg Reg, size int) {
	checkSizedReg("xchg_membase_reg", size, reg)
	s.Append(movOpcode(s, "xchg_membase_reg", size, X86_OP_XCHG_RM8_R8, X86_OP_XCHG_RM_R))
	MembaseEmit(s, byte(reg), base, disp)
}

// CmpxchgRegReg compares EAX with dreg and, if equal, stores reg into dreg.
func CmpxchgRegReg(s Sink, dreg, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_CMPXCHG)
	RegEmit(s, byte(reg), dreg)
}

func CmpxchgMemReg(s Sink, mem int32, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_CMPXCHG)
	MemEmit(s, byte(reg), mem)
}

func CmpxchgMembaseReg(s Sink, base Reg, disp int32, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_CMPXCHG)
	MembaseEmit(s, byte(reg), base, disp)
}
