package x86

// ShiftOp is the Group 2 /digit of a shift or rotate.
type ShiftOp byte

const (
	ROL ShiftOp = 0
	ROR ShiftOp = 1
	RCL ShiftOp = 2
	RCR ShiftOp = 3
	SHL ShiftOp = 4
	SHR ShiftOp = 5
	SAL ShiftOp = 4
	SAR ShiftOp = 7
)

var shiftNames = map[string]ShiftOp{
	"rol": ROL, "ror": ROR, "rcl": RCL, "rcr": RCR,
	"shl": SHL, "sal": SAL, "shr": SHR, "sar": SAR,
}

func (op ShiftOp) String() string {
	switch op {
	case ROL:
		return "rol"
	case ROR:
		return "ror"
	case RCL:
		return "rcl"
	case RCR:
		return "rcr"
	case SHL:
		return "shl"
	case SHR:
		return "shr"
	case SAR:
		return "sar"
	}
	return "shift?"
}

// ParseShiftOp looks up a shift or rotate by mnemonic.
func ParseShiftOp(name string) (ShiftOp, bool) {
	op, ok := shiftNames[name]
	return op, ok
}

func checkShiftOp(op ShiftOp) {
	if op > SAR || op == 6 {
		fatal("shift", "unknown operation %d", op)
	}
}

func shiftImm(s Sink, op ShiftOp, a *Address, reg Reg, count byte) {
	checkShiftOp(op)
	if count == 1 {
		s.Append(X86_OP_GROUP2_RM_1)
	} else {
		s.Append(X86_OP_GROUP2_RM_IMM8)
	}
	if a == nil {
		RegEmit(s, byte(op), reg)
	} else {
		EmitAddress(s, byte(op), *a)
	}
	if count != 1 {
		EmitImm8(s, int32(count))
	}
}

// ShiftRegImm encodes `op reg, count`, using the implicit-1 form when count is 1.
func ShiftRegImm(s Sink, op ShiftOp, reg Reg, count byte) {
	shiftImm(s, op, nil, reg, count)
}

func ShiftMemImm(s Sink, op ShiftOp, mem int32, count byte) {
	a := Abs(mem)
	shiftImm(s, op, &a, 0, count)
}

func ShiftMembaseImm(s Sink, op ShiftOp, base Reg, disp int32, count byte) {
	a := Base(base, disp)
	shiftImm(s, op, &a, 0, count)
}

// ShiftReg encodes `op reg, cl`.
func ShiftReg(s Sink, op ShiftOp, reg Reg) {
	checkShiftOp(op)
	s.Append(X86_OP_GROUP2_RM_CL)
	RegEmit(s, byte(op), reg)
}

func ShiftMem(s Sink, op ShiftOp, mem int32) {
	checkShiftOp(op)
	s.Append(X86_OP_GROUP2_RM_CL)
	MemEmit(s, byte(op), mem)
}

func ShiftMembase(s Sink, op ShiftOp, base Reg, disp int32) {
	checkShiftOp(op)
	s.Append(X86_OP_GROUP2_RM_CL)
	MembaseEmit(s, byte(op), base, disp)
}

// ShrdReg encodes `shrd dreg, reg, cl`.
func ShrdReg(s Sink, dreg, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_SHRD_CL)
	RegEmit(s, byte(reg), dreg)
}

func ShrdRegImm(s Sink, dreg, reg Reg, count byte) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_SHRD_IMM8)
	RegEmit(s, byte(reg), dreg)
	EmitImm8(s, int32(count))
}

// ShldReg encodes `shld dreg, reg, cl`.
func ShldReg(s Sink, dreg, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_SHLD_CL)
	RegEmit(s, byte(reg), dreg)
}

func ShldRegImm(s Sink, dreg, reg Reg, count byte) {
	emit(s, X86_OP_PREFIX_0F, X86_OP2_SHLD_IMM8)
	RegEmit(s, byte(reg), dreg)
	EmitImm8(s, int32(count))
}
