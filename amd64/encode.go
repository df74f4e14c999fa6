package amd64

import (
	"encoding/binary"

	"github.com/colorfulnotion/x86emit/x86"
)

func movOpcode(size int, byteOp, wordOp byte) byte {
	if size == 1 {
		return byteOp
	}
	return wordOp
}

func checkBase(op string, base Reg) {
	// mod=00 rm=101 is RIP-relative in 64-bit mode, so there is no
	// absolute form through MembaseEmit here.
	if base >= NumRegs {
		fail(op, "base register %d out of range", base)
	}
}

func checkIndex(op string, index Reg) {
	if index == RSP {
		fail(op, "rsp cannot be an index register")
	}
	checkReg(op, index)
}

// MovRegReg copies reg into dreg.
func MovRegReg(s x86.Sink, dreg, reg Reg, size int) {
	checkSize("mov_reg_reg", size)
	checkReg("mov_reg_reg", dreg, reg)
	EmitRex(s, size, dreg, 0, reg)
	s.Append(movOpcode(size, x86.X86_OP_MOV_R8_RM8, x86.X86_OP_MOV_R_RM))
	x86.RegEmit(s, dreg.RegBits(), reg.low())
}

// MovRegMembase loads [base+disp] into reg.
func MovRegMembase(s x86.Sink, reg, base Reg, disp int32, size int) {
	checkSize("mov_reg_membase", size)
	checkReg("mov_reg_membase", reg)
	checkBase("mov_reg_membase", base)
	emitRexMem(s, size, reg, 0, base)
	s.Append(movOpcode(size, x86.X86_OP_MOV_R8_RM8, x86.X86_OP_MOV_R_RM))
	x86.MembaseEmit(s, reg.RegBits(), base.low(), disp)
}

// MovMembaseReg stores reg into [base+disp].
func MovMembaseReg(s x86.Sink, base Reg, disp int32, reg Reg, size int) {
	checkSize("mov_membase_reg", size)
	checkReg("mov_membase_reg", reg)
	checkBase("mov_membase_reg", base)
	emitRexMem(s, size, reg, 0, base)
	s.Append(movOpcode(size, x86.X86_OP_MOV_RM8_R8, x86.X86_OP_MOV_RM_R))
	x86.MembaseEmit(s, reg.RegBits(), base.low(), disp)
}

// MovRegMemindex loads [base + index<<shift + disp] into reg.
func MovRegMemindex(s x86.Sink, reg, base Reg, disp int32, index Reg, shift byte, size int) {
	checkSize("mov_reg_memindex", size)
	checkReg("mov_reg_memindex", reg)
	checkBase("mov_reg_memindex", base)
	checkIndex("mov_reg_memindex", index)
	if shift > 3 {
		fail("mov_reg_memindex", "scale shift %d out of range", shift)
	}
	emitRexMem(s, size, reg, index, base)
	s.Append(movOpcode(size, x86.X86_OP_MOV_R8_RM8, x86.X86_OP_MOV_R_RM))
	x86.MemindexEmit(s, reg.RegBits(), base.low(), disp, index.low(), shift)
}

// MovRegImm loads a 64-bit constant with the shortest form: a 32-bit move
// that zero-extends, a sign-extended imm32, or the full imm64.
func MovRegImm(s x86.Sink, reg Reg, imm int64) {
	checkReg("mov_reg_imm", reg)
	switch {
	case imm >= 0 && imm <= 0xFFFFFFFF:
		EmitRex(s, 4, 0, 0, reg)
		s.Append(x86.X86_OP_MOV_R_IMM + reg.RegBits())
		x86.EmitImm32(s, int32(uint32(imm)))
	case x86.IsImm32(imm):
		EmitRex(s, 8, 0, 0, reg)
		s.Append(x86.X86_OP_MOV_RM_IMM)
		x86.RegEmit(s, 0, reg.low())
		x86.EmitImm32(s, int32(imm))
	default:
		EmitRex(s, 8, 0, 0, reg)
		s.Append(x86.X86_OP_MOV_R_IMM + reg.RegBits())
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(imm))
		for _, v := range b {
			s.Append(v)
		}
	}
}

// LeaMembase computes base+disp into reg (64-bit).
func LeaMembase(s x86.Sink, reg, base Reg, disp int32) {
	checkReg("lea_membase", reg)
	checkBase("lea_membase", base)
	emitRexMem(s, 8, reg, 0, base)
	s.Append(x86.X86_OP_LEA)
	x86.MembaseEmit(s, reg.RegBits(), base.low(), disp)
}

func checkWide(op string, size int) {
	if size != 4 && size != 8 {
		fail(op, "invalid operand size %d", size)
	}
}

// AluRegReg encodes `op dreg, reg` on 32 or 64-bit operands.
func AluRegReg(s x86.Sink, op x86.AluOp, dreg, reg Reg, size int) {
	checkWide("alu_reg_reg", size)
	checkReg("alu_reg_reg", dreg, reg)
	if op > x86.CMP {
		fail("alu_reg_reg", "unknown operation %d", op)
	}
	EmitRex(s, size, dreg, 0, reg)
	s.Append(byte(op)<<3 + x86.X86_OP_ALU_R_RM)
	x86.RegEmit(s, dreg.RegBits(), reg.low())
}

// AluRegImm encodes `op reg, imm`. The sign-extended imm8 form is tried
// first; only RAX itself gets the accumulator form.
func AluRegImm(s x86.Sink, op x86.AluOp, reg Reg, imm int32, size int) {
	checkWide("alu_reg_imm", size)
	checkReg("alu_reg_imm", reg)
	if op > x86.CMP {
		fail("alu_reg_imm", "unknown operation %d", op)
	}
	EmitRex(s, size, 0, 0, reg)
	switch {
	case x86.IsImm8(imm):
		s.Append(x86.X86_OP_GROUP1_RM_IMM8)
		x86.RegEmit(s, byte(op), reg.low())
		x86.EmitImm8(s, imm)
	case reg == RAX:
		s.Append(byte(op)<<3 + x86.X86_OP_ALU_EAX_IMM)
		x86.EmitImm32(s, imm)
	default:
		s.Append(x86.X86_OP_GROUP1_RM_IMM32)
		x86.RegEmit(s, byte(op), reg.low())
		x86.EmitImm32(s, imm)
	}
}

// AluRegMembase encodes `op reg, [base+disp]`.
func AluRegMembase(s x86.Sink, op x86.AluOp, reg, base Reg, disp int32, size int) {
	checkWide("alu_reg_membase", size)
	checkReg("alu_reg_membase", reg)
	checkBase("alu_reg_membase", base)
	if op > x86.CMP {
		fail("alu_reg_membase", "unknown operation %d", op)
	}
	emitRexMem(s, size, reg, 0, base)
	s.Append(byte(op)<<3 + x86.X86_OP_ALU_R_RM)
	x86.MembaseEmit(s, reg.RegBits(), base.low(), disp)
}

// ShiftRegImm encodes a shift or rotate of reg by a constant count.
func ShiftRegImm(s x86.Sink, op x86.ShiftOp, reg Reg, count byte, size int) {
	checkWide("shift_reg_imm", size)
	checkReg("shift_reg_imm", reg)
	EmitRex(s, size, 0, 0, reg)
	x86.ShiftRegImm(s, op, reg.low(), count)
}

// TestRegReg encodes `test dreg, reg`.
func TestRegReg(s x86.Sink, dreg, reg Reg, size int) {
	checkWide("test_reg_reg", size)
	checkReg("test_reg_reg", dreg, reg)
	EmitRex(s, size, reg, 0, dreg)
	x86.TestRegReg(s, dreg.low(), reg.low())
}

// PushReg pushes a 64-bit register.
func PushReg(s x86.Sink, reg Reg) {
	checkReg("push_reg", reg)
	EmitRex(s, 4, 0, 0, reg)
	x86.PushReg(s, reg.low())
}

func PopReg(s x86.Sink, reg Reg) {
	checkReg("pop_reg", reg)
	EmitRex(s, 4, 0, 0, reg)
	x86.PopReg(s, reg.low())
}
