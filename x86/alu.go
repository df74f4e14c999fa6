package x86

// AluOp selects one of the eight Group 1 arithmetic/logic operations. The
// value is both the ModRM /digit and bits 3-5 of the one-byte opcodes.
type AluOp byte

const (
	ADD AluOp = 0
	OR  AluOp = 1
	ADC AluOp = 2
	SBB AluOp = 3
	AND AluOp = 4
	SUB AluOp = 5
	XOR AluOp = 6
	CMP AluOp = 7
)

var aluNames = [8]string{"add", "or", "adc", "sbb", "and", "sub", "xor", "cmp"}

func (op AluOp) String() string {
	if op < 8 {
		return aluNames[op]
	}
	return "alu?"
}

// ParseAluOp looks up an ALU operation by mnemonic.
func ParseAluOp(name string) (AluOp, bool) {
	for i, n := range aluNames {
		if n == name {
			return AluOp(i), true
		}
	}
	return 0, false
}

func checkAluOp(op AluOp) {
	if op > CMP {
		fatal("alu", "unknown operation %d", op)
	}
}

// AluRegImm encodes `op reg, imm`. EAX always uses the dedicated accumulator form.
func AluRegImm(s Sink, op AluOp, reg Reg, imm int32) {
	checkAluOp(op)
	if reg == EAX {
		s.Append(byte(op)<<3 + X86_OP_ALU_EAX_IMM)
		EmitImm32(s, imm)
		return
	}
	if IsImm8(imm) {
		s.Append(X86_OP_GROUP1_RM_IMM8)
		RegEmit(s, byte(op), reg)
		EmitImm8(s, imm)
	} else {
		s.Append(X86_OP_GROUP1_RM_IMM32)
		RegEmit(s, byte(op), reg)
		EmitImm32(s, imm)
	}
}

// AluReg16Imm encodes `op reg16, imm16`.
func AluReg16Imm(s Sink, op AluOp, reg Reg, imm int32) {
	checkAluOp(op)
	if !IsImm16(imm) {
		fatal("alu_reg16_imm", "immediate %d does not fit 16 bits", imm)
	}
	s.Append(X86_OP_PREFIX_66)
	if reg == EAX {
		s.Append(byte(op)<<3 + X86_OP_ALU_EAX_IMM)
		EmitImm16(s, imm)
		return
	}
	if IsImm8(imm) {
		s.Append(X86_OP_GROUP1_RM_IMM8)
		RegEmit(s, byte(op), reg)
		EmitImm8(s, imm)
	} else {
		s.Append(X86_OP_GROUP1_RM_IMM32)
		RegEmit(s, byte(op), reg)
		EmitImm16(s, imm)
	}
}

func aluAddrImm(s Sink, op AluOp, a Address, imm int32) {
	checkAluOp(op)
	if IsImm8(imm) {
		s.Append(X86_OP_GROUP1_RM_IMM8)
		EmitAddress(s, byte(op), a)
		EmitImm8(s, imm)
	} else {
		s.Append(X86_OP_GROUP1_RM_IMM32)
		EmitAddress(s, byte(op), a)
		EmitImm32(s, imm)
	}
}

func AluMemImm(s Sink, op AluOp, mem int32, imm int32) {
	aluAddrImm(s, op, Abs(mem), imm)
}

func AluMembaseImm(s Sink, op AluOp, base Reg, disp int32, imm int32) {
	aluAddrImm(s, op, Base(base, disp), imm)
}

func AluMemindexImm(s Sink, op AluOp, base Reg, disp int32, index Reg, shift byte, imm int32) {
	aluAddrImm(s, op, Index(base, disp, index, shift), imm)
}

// AluMembase8Imm encodes `op byte [base+disp], imm8`.
func AluMembase8Imm(s Sink, op AluOp, base Reg, disp int32, imm int32) {
	checkAluOp(op)
	s.Append(X86_OP_GROUP1_RM8_IMM8)
	MembaseEmit(s, byte(op), base, disp)
	EmitImm8(s, imm)
}

// `op [mem], reg`
func AluMemReg(s Sink, op AluOp, mem int32, reg Reg) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_RM_R)
	MemEmit(s, byte(reg), mem)
}

func AluMembaseReg(s Sink, op AluOp, base Reg, disp int32, reg Reg) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_RM_R)
	MembaseEmit(s, byte(reg), base, disp)
}

func AluMemindexReg(s Sink, op AluOp, base Reg, disp int32, index Reg, shift byte, reg Reg) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_RM_R)
	MemindexEmit(s, byte(reg), base, disp, index, shift)
}

// AluRegReg encodes `op dreg, reg`.
func AluRegReg(s Sink, op AluOp, dreg, reg Reg) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_R_RM)
	RegEmit(s, byte(dreg), reg)
}

// AluReg8Reg8 encodes a byte ALU operation. The high flags select AH..BH
// instead of AL..BL for the respective operand.
func AluReg8Reg8(s Sink, op AluOp, dreg, reg Reg, dregHigh, regHigh bool) {
	checkAluOp(op)
	checkByteReg("alu_reg8_reg8", dreg)
	checkByteReg("alu_reg8_reg8", reg)
	if dregHigh {
		dreg += 4
	}
	if regHigh {
		reg += 4
	}
	s.Append(byte(op)<<3 + X86_OP_ALU_R8_RM8)
	RegEmit(s, byte(dreg), reg)
}

// `op reg, [mem]`
func AluRegMem(s Sink, op AluOp, reg Reg, mem int32) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_R_RM)
	MemEmit(s, byte(reg), mem)
}

func AluRegMembase(s Sink, op AluOp, reg Reg, base Reg, disp int32) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_R_RM)
	MembaseEmit(s, byte(reg), base, disp)
}

func AluRegMemindex(s Sink, op AluOp, reg Reg, base Reg, disp int32, index Reg, shift byte) {
	checkAluOp(op)
	s.Append(byte(op)<<3 + X86_OP_ALU_R_RM)
	MemindexEmit(s, byte(reg), base, disp, index, shift)
}

// TestRegImm encodes `test reg, imm32`.
func TestRegImm(s Sink, reg Reg, imm int32) {
	if reg == EAX {
		s.Append(X86_OP_TEST_EAX_IMM)
	} else {
		s.Append(X86_OP_GROUP3_RM)
		RegEmit(s, X86_REG_TEST, reg)
	}
	EmitImm32(s, imm)
}

// TestMemImm8 encodes `test byte [mem], imm8`.
func TestMemImm8(s Sink, mem int32, imm int32) {
	s.Append(X86_OP_GROUP3_RM8)
	MemEmit(s, X86_REG_TEST, mem)
	EmitImm8(s, imm)
}

func TestMemImm(s Sink, mem int32, imm int32) {
	s.Append(X86_OP_GROUP3_RM)
	MemEmit(s, X86_REG_TEST, mem)
	EmitImm32(s, imm)
}

func TestMembaseImm(s Sink, base Reg, disp int32, imm int32) {
	s.Append(X86_OP_GROUP3_RM)
	MembaseEmit(s, X86_REG_TEST, base, disp)
	EmitImm32(s, imm)
}

func TestRegReg(s Sink, dreg, reg Reg) {
	s.Append(X86_OP_TEST_RM_R)
	RegEmit(s, byte(reg), dreg)
}

func TestMemReg(s Sink, mem int32, reg Reg) {
	s.Append(X86_OP_TEST_RM_R)
	MemEmit(s, byte(reg), mem)
}

func TestMembaseReg(s Sink, base Reg, disp int32, reg Reg) {
	s.Append(X86_OP_TEST_RM_R)
	MembaseEmit(s, byte(reg), base, disp)
}

// INC/DEC use 40+r/48+r for registers and FF /0, /1 for memory. NOT/NEG are F7 /2, /3.

func IncReg(s Sink, reg Reg) {
	s.Append(X86_OP_INC_R + byte(reg))
}

func IncMem(s Sink, mem int32) {
	unaryMem(s, X86_OP_GROUP5_RM, X86_REG_INC_RM, Abs(mem))
}

func IncMembase(s Sink, base Reg, disp int32) {
	unaryMem(s, X86_OP_GROUP5_RM, X86_REG_INC_RM, Base(base, disp))
}

func DecReg(s Sink, reg Reg) {
	s.Append(X86_OP_DEC_R + byte(reg))
}

func DecMem(s Sink, mem int32) {
	unaryMem(s, X86_OP_GROUP5_RM, X86_REG_DEC_RM, Abs(mem))
}

func DecMembase(s Sink, base Reg, disp int32) {
	unaryMem(s, X86_OP_GROUP5_RM, X86_REG_DEC_RM, Base(base, disp))
}

func NotReg(s Sink, reg Reg) {
	s.Append(X86_OP_GROUP3_RM)
	RegEmit(s, X86_REG_NOT, reg)
}

func NotMem(s Sink, mem int32) {
	unaryMem(s, X86_OP_GROUP3_RM, X86_REG_NOT, Abs(mem))
}

func NotMembase(s Sink, base Reg, disp int32) {
	unaryMem(s, X86_OP_GROUP3_RM, X86_REG_NOT, Base(base, disp))
}

func NegReg(s Sink, reg Reg) {
	s.Append(X86_OP_GROUP3_RM)
	RegEmit(s, X86_REG_NEG, reg)
}

func NegMem(s Sink, mem int32) {
	unaryMem(s, X86_OP_GROUP3_RM, X86_REG_NEG, Abs(mem))
}

func NegMembase(s Sink, base Reg, disp int32) {
	unaryMem(s, X86_OP_GROUP3_RM, X86_REG_NEG, Base(base, disp))
}

func unaryMem(s Sink, opcode byte, digit byte, a Address) {
	s.Append(opcode)
	EmitAddress(s, digit, a)
}
