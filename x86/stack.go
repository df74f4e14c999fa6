package x86

func PushReg(s Sink, reg Reg) {
	s.Append(X86_OP_PUSH_R + byte(reg))
}

// PushRegp pushes the dword at [reg].
func PushRegp(s Sink, reg Reg) {
	s.Append(X86_OP_GROUP5_RM)
	RegpEmit(s, X86_REG_PUSH_RM, reg)
}

func PushMem(s Sink, mem int32) {
	s.Append(X86_OP_GROUP5_RM)
	MemEmit(s, X86_REG_PUSH_RM, mem)
}

func PushMembase(s Sink, base Reg, disp int32) {
	s.Append(X86_OP_GROUP5_RM)
	MembaseEmit(s, X86_REG_PUSH_RM, base, disp)
}

func PushMemindex(s Sink, base Reg, disp int32, index Reg, shift byte) {
	s.Append(X86_OP_GROUP5_RM)
	MemindexEmit(s, X86_REG_PUSH_RM, base, disp, index, shift)
}

// PushImm pushes a sign-extended imm8 when it fits, else an imm32.
func PushImm(s Sink, imm int32) {
	if IsImm8(imm) {
		s.Append(X86_OP_PUSH_IMM8)
		EmitImm8(s, imm)
		return
	}
	s.Append(X86_OP_PUSH_IMM32)
	EmitImm32(s, imm)
}

func PopReg(s Sink, reg Reg) {
	s.Append(X86_OP_POP_R + byte(reg))
}

func PopMem(s Sink, mem int32) {
	s.Append(X86_OP_POP_RM)
	MemEmit(s, 0, mem)
}

func PopMembase(s Sink, base Reg, disp int32) {
	s.Append(X86_OP_POP_RM)
	MembaseEmit(s, 0, base, disp)
}

func Pushad(s Sink) { s.Append(X86_OP_PUSHAD) }

func Popad(s Sink) { s.Append(X86_OP_POPAD) }

func Pushfd(s Sink) { s.Append(X86_OP_PUSHFD) }

func Popfd(s Sink) { s.Append(X86_OP_POPFD) }
