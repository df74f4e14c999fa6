package x86

import "github.com/colorfulnotion/x86emit/log"

func Jump32(s Sink, disp int32) {
	s.Append(X86_OP_JMP_REL32)
	EmitImm32(s, disp)
}

func Jump8(s Sink, disp int32) {
	s.Append(X86_OP_JMP_REL8)
	EmitImm8(s, disp)
}

func JumpReg(s Sink, reg Reg) {
	s.Append(X86_OP_GROUP5_RM)
	RegEmit(s, X86_REG_JMP_RM, reg)
}

func JumpMem(s Sink, mem int32) {
	s.Append(X86_OP_GROUP5_RM)
	MemEmit(s, X86_REG_JMP_RM, mem)
}

func JumpMembase(s Sink, base Reg, disp int32) {
	s.Append(X86_OP_GROUP5_RM)
	MembaseEmit(s, X86_REG_JMP_RM, base, disp)
}

// JumpCode jumps to the absolute buffer position target, picking the
// short form when the displacement fits.
func JumpCode(s Sink, target int) {
	JumpDisp(s, int32(target-s.Len()))
}

// JumpDisp jumps disp bytes from the start of this instruction.
func JumpDisp(s Sink, disp int32) {
	t := disp - X86_SHORT_JMP_LEN
	if IsImm8(t) {
		Jump8(s, t)
		return
	}
	Jump32(s, t-X86_NEAR_JMP_EXTRA)
}

// Branch8 encodes a short Jcc with a raw rel8.
func Branch8(s Sink, c Cond, disp int32, signed bool) {
	s.Append(CondOpcode(c, signed))
	EmitImm8(s, disp)
}

// Branch32 encodes a near Jcc with a raw rel32.
func Branch32(s Sink, c Cond, disp int32, signed bool) {
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)+X86_CC_NEAR_DELTA)
	EmitImm32(s, disp)
}

// Branch jumps to the absolute buffer position target when c holds.
func Branch(s Sink, c Cond, target int, signed bool) {
	BranchDisp(s, c, int32(target-s.Len()), signed)
}

// BranchDisp branches disp bytes from the start of this instruction.
func BranchDisp(s Sink, c Cond, disp int32, signed bool) {
	t := disp - X86_SHORT_JMP_LEN
	if IsImm8(t) {
		Branch8(s, c, t, signed)
		return
	}
	Branch32(s, c, t-X86_NEAR_JCC_EXTRA, signed)
}

// Loop decrements ECX and jumps by a rel8 while it is non-zero.
func Loop(s Sink, disp int32) {
	s.Append(X86_OP_LOOP)
	EmitImm8(s, disp)
}

func Loope(s Sink, disp int32) {
	s.Append(X86_OP_LOOPE)
	EmitImm8(s, disp)
}

func Loopne(s Sink, disp int32) {
	s.Append(X86_OP_LOOPNE)
	EmitImm8(s, disp)
}

// CallImm encodes `call rel32`.
func CallImm(s Sink, disp int32) {
	s.Append(X86_OP_CALL_REL32)
	EmitImm32(s, disp)
}

func CallReg(s Sink, reg Reg) {
	s.Append(X86_OP_GROUP5_RM)
	RegEmit(s, X86_REG_CALL_RM, reg)
}

func CallMem(s Sink, mem int32) {
	s.Append(X86_OP_GROUP5_RM)
	MemEmit(s, X86_REG_CALL_RM, mem)
}

func CallMembase(s Sink, base Reg, disp int32) {
	s.Append(X86_OP_GROUP5_RM)
	MembaseEmit(s, X86_REG_CALL_RM, base, disp)
}

// CallCode calls the absolute buffer position target.
func CallCode(s Sink, target int) {
	CallImm(s, int32(target-s.Len()-X86_NEAR_JMP_LEN))
}

func Ret(s Sink) {
	s.Append(X86_OP_RET)
}

// RetImm returns and pops imm bytes of arguments. Zero is a plain ret.
func RetImm(s Sink, imm uint16) {
	if imm == 0 {
		Ret(s)
		return
	}
	s.Append(X86_OP_RET_IMM16)
	EmitImm16(s, int32(imm))
}

// BranchSpan locates the displacement of an emitted branch or call.
type BranchSpan struct {
	Field int // offset of the displacement from the instruction start
	Width int // 1 or 4
	Len   int // instruction length
}

// InstructionSpan classifies the branch or call starting at pos from its
// opcode bytes. Anything that is not a patchable relative transfer is fatal.
func InstructionSpan(s Sink, pos int) BranchSpan {
	op := s.GetAt(pos)
	switch {
	case op == X86_OP_CALL_REL32 || op == X86_OP_JMP_REL32:
		return BranchSpan{Field: 1, Width: 4, Len: X86_NEAR_JMP_LEN}
	case op == X86_OP_PREFIX_0F:
		op2 := s.GetAt(pos + 1)
		if op2 < X86_OP_JCC_REL8 || op2 > X86_OP2_JCC_REL32+0x0F {
			fatal("patch", "0x0f 0x%02x at %d is not a near branch", op2, pos)
		}
		return BranchSpan{Field: 2, Width: 4, Len: X86_NEAR_JCC_LEN}
	case op >= X86_OP_LOOPNE && op <= X86_OP_LOOP,
		op == X86_OP_JMP_REL8,
		op >= X86_OP_JCC_REL8 && op <= X86_OP_JCC_REL8+0x0F:
		return BranchSpan{Field: 1, Width: 1, Len: X86_SHORT_JMP_LEN}
	}
	fatal("patch", "opcode 0x%02x at %d is not a branch", op, pos)
	return BranchSpan{}
}

// Patch rewrites the displacement of the branch or call at pos so that it
// transfers to target. Both are absolute buffer positions.
func Patch(s Sink, pos int, target int) {
	span := InstructionSpan(s, pos)
	disp := int32(target - (pos + span.Len))
	log.Trace(log.PatchMonitoring, "patch", "pos", pos, "target", target, "width", span.Width, "disp", disp)
	if span.Width == 4 {
		PatchImm32(s, pos+span.Field, disp)
		return
	}
	if !IsImm8(disp) {
		fatal("patch", "displacement %d from %d does not fit a short branch", disp, pos)
	}
	PatchImm8(s, pos+span.Field, disp)
}

// BranchTarget reads back the absolute target of the branch or call at pos.
func BranchTarget(s Sink, pos int) int {
	span := InstructionSpan(s, pos)
	var disp int32
	if span.Width == 4 {
		disp = ReadImm32(s, pos+span.Field)
	} else {
		disp = int32(int8(s.GetAt(pos + span.Field)))
	}
	return pos + span.Len + int(disp)
}
