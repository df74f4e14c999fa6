package x86

// FpOp is the /digit of the x87 arithmetic group.
type FpOp byte

const (
	FADD  FpOp = 0
	FMUL  FpOp = 1
	FCOM  FpOp = 2
	FCOMP FpOp = 3
	FSUB  FpOp = 4
	FSUBR FpOp = 5
	FDIV  FpOp = 6
	FDIVR FpOp = 7
)

// x87 escape opcodes
const (
	X86_FPU_D8 = 0xD8
	X86_FPU_D9 = 0xD9
	X86_FPU_DA = 0xDA
	X86_FPU_DB = 0xDB
	X86_FPU_DC = 0xDC
	X86_FPU_DD = 0xDD
	X86_FPU_DE = 0xDE
	X86_FPU_DF = 0xDF
)

// fpRegMap translates an FpOp to the reg field of the DC/DE st(i) forms,
// where the reversed subtract and divide trade places.
var fpRegMap = [9]byte{0, 1, 2, 3, 5, 4, 7, 6, 8}

func fpSize(double bool, d, s byte) byte {
	if double {
		return d
	}
	return s
}

// FpOpMem encodes `op st0, [mem]` on a float (D8) or double (DC).
func FpOpMem(s Sink, op FpOp, mem int32, double bool) {
	s.Append(fpSize(double, X86_FPU_DC, X86_FPU_D8))
	MemEmit(s, byte(op), mem)
}

func FpOpMembase(s Sink, op FpOp, base Reg, disp int32, double bool) {
	s.Append(fpSize(double, X86_FPU_DC, X86_FPU_D8))
	MembaseEmit(s, byte(op), base, disp)
}

// FpOpStack encodes `op st0, st(i)`.
func FpOpStack(s Sink, op FpOp, i byte) {
	emit(s, X86_FPU_D8, 0xC0+byte(op)<<3+(i&7))
}

// FpOpReg encodes `op st(i), st0`, popping the stack when pop is set.
func FpOpReg(s Sink, op FpOp, i byte, pop bool) {
	if int(op) >= len(fpRegMap) {
		fatal("fp_op_reg", "unknown operation %d", op)
	}
	s.Append(fpSize(pop, X86_FPU_DE, X86_FPU_DC))
	RegEmit(s, fpRegMap[op], Reg(i))
}

// FpIntOpMembase encodes `fiop st0, [base+disp]` on an int32 (DA) or int16 (DE).
func FpIntOpMembase(s Sink, op FpOp, base Reg, disp int32, isInt bool) {
	s.Append(fpSize(isInt, X86_FPU_DA, X86_FPU_DE))
	MembaseEmit(s, byte(op), base, disp)
}

func Fstp(s Sink, i byte) { emit(s, X86_FPU_DD, 0xD8+i) }

func Fcompp(s Sink) { emit(s, X86_FPU_DE, 0xD9) }

func Fucompp(s Sink) { emit(s, X86_FPU_DA, 0xE9) }

func Fnstsw(s Sink) { emit(s, X86_FPU_DF, 0xE0) }

// Fstsw is the waiting form of Fnstsw.
func Fstsw(s Sink) { emit(s, X86_OP_WAIT, X86_FPU_DF, 0xE0) }

func Fnstcw(s Sink, mem int32) {
	s.Append(X86_FPU_D9)
	MemEmit(s, 7, mem)
}

func FnstcwMembase(s Sink, base Reg, disp int32) {
	s.Append(X86_FPU_D9)
	MembaseEmit(s, 7, base, disp)
}

func Fldcw(s Sink, mem int32) {
	s.Append(X86_FPU_D9)
	MemEmit(s, 5, mem)
}

func FldcwMembase(s Sink, base Reg, disp int32) {
	s.Append(X86_FPU_D9)
	MembaseEmit(s, 5, base, disp)
}

func Fxch(s Sink, i byte) { emit(s, X86_FPU_D9, 0xC8+i) }

func Fcomi(s Sink, i byte) { emit(s, X86_FPU_DB, 0xF0+i) }

func Fcomip(s Sink, i byte) { emit(s, X86_FPU_DF, 0xF0+i) }

func Fucomi(s Sink, i byte) { emit(s, X86_FPU_DB, 0xE8+i) }

func Fucomip(s Sink, i byte) { emit(s, X86_FPU_DF, 0xE8+i) }

// Fld pushes a float or double from [mem].
func Fld(s Sink, mem int32, double bool) {
	s.Append(fpSize(double, X86_FPU_DD, X86_FPU_D9))
	MemEmit(s, 0, mem)
}

func FldMembase(s Sink, base Reg, disp int32, double bool) {
	s.Append(fpSize(double, X86_FPU_DD, X86_FPU_D9))
	MembaseEmit(s, 0, base, disp)
}

func FldMemindex(s Sink, base Reg, disp int32, index Reg, shift byte, double bool) {
	s.Append(fpSize(double, X86_FPU_DD, X86_FPU_D9))
	MemindexEmit(s, 0, base, disp, index, shift)
}

// Fld80Mem pushes an 80-bit extended value.
func Fld80Mem(s Sink, mem int32) {
	s.Append(X86_FPU_DB)
	MemEmit(s, 5, mem)
}

func Fld80Membase(s Sink, base Reg, disp int32) {
	s.Append(X86_FPU_DB)
	MembaseEmit(s, 5, base, disp)
}

// Fild pushes an int32, or an int64 when long is set.
func Fild(s Sink, mem int32, long bool) {
	if long {
		s.Append(X86_FPU_DF)
		MemEmit(s, 5, mem)
	} else {
		s.Append(X86_FPU_DB)
		MemEmit(s, 0, mem)
	}
}

func FildMembase(s Sink, base Reg, disp int32, long bool) {
	if long {
		s.Append(X86_FPU_DF)
		MembaseEmit(s, 5, base, disp)
	} else {
		s.Append(X86_FPU_DB)
		MembaseEmit(s, 0, base, disp)
	}
}

// FldReg pushes a copy of st(i).
func FldReg(s Sink, i byte) { emit(s, X86_FPU_D9, 0xC0+i) }

func Fldz(s Sink) { emit(s, X86_FPU_D9, 0xEE) }

func Fld1(s Sink) { emit(s, X86_FPU_D9, 0xE8) }

func Fldpi(s Sink) { emit(s, X86_FPU_D9, 0xEB) }

func fstDigit(pop bool) byte {
	if pop {
		return 3
	}
	return 2
}

// Fst stores st0 as a float or double, popping when pop is set.
func Fst(s Sink, mem int32, double, pop bool) {
	s.Append(fpSize(double, X86_FPU_DD, X86_FPU_D9))
	MemEmit(s, fstDigit(pop), mem)
}

func FstMembase(s Sink, base Reg, disp int32, double, pop bool) {
	s.Append(fpSize(double, X86_FPU_DD, X86_FPU_D9))
	MembaseEmit(s, fstDigit(pop), base, disp)
}

// Fst80Mem stores and pops st0 as an 80-bit extended value.
func Fst80Mem(s Sink, mem int32) {
	s.Append(X86_FPU_DB)
	MemEmit(s, 7, mem)
}

func Fst80Membase(s Sink, base Reg, disp int32) {
	s.Append(X86_FPU_DB)
	MembaseEmit(s, 7, base, disp)
}

// FistPop stores st0 as an int32 (or int64 when long) and pops.
func FistPop(s Sink, mem int32, long bool) {
	if long {
		s.Append(X86_FPU_DF)
		MemEmit(s, 7, mem)
	} else {
		s.Append(X86_FPU_DB)
		MemEmit(s, 3, mem)
	}
}

func FistPopMembase(s Sink, base Reg, disp int32, long bool) {
	if long {
		s.Append(X86_FPU_DF)
		MembaseEmit(s, 7, base, disp)
	} else {
		s.Append(X86_FPU_DB)
		MembaseEmit(s, 3, base, disp)
	}
}

// FistMembase stores st0 as an int32 (or int16) without popping.
func FistMembase(s Sink, base Reg, disp int32, isInt bool) {
	s.Append(fpSize(isInt, X86_FPU_DB, X86_FPU_DF))
	MembaseEmit(s, 2, base, disp)
}

// Single-purpose D9 xx instructions.
func Fchs(s Sink)    { emit(s, X86_FPU_D9, 0xE0) }
func Fabs(s Sink)    { emit(s, X86_FPU_D9, 0xE1) }
func Ftst(s Sink)    { emit(s, X86_FPU_D9, 0xE4) }
func Fxam(s Sink)    { emit(s, X86_FPU_D9, 0xE5) }
func Fptan(s Sink)   { emit(s, X86_FPU_D9, 0xF2) }
func Fpatan(s Sink)  { emit(s, X86_FPU_D9, 0xF3) }
func Fprem1(s Sink)  { emit(s, X86_FPU_D9, 0xF5) }
func Fdecstp(s Sink) { emit(s, X86_FPU_D9, 0xF6) }
func Fincstp(s Sink) { emit(s, X86_FPU_D9, 0xF7) }
func Fprem(s Sink)   { emit(s, X86_FPU_D9, 0xF8) }
func Frem(s Sink)    { emit(s, X86_FPU_D9, 0xF8) }
func Fsqrt(s Sink)   { emit(s, X86_FPU_D9, 0xFA) }
func Frndint(s Sink) { emit(s, X86_FPU_D9, 0xFC) }
func Fsin(s Sink)    { emit(s, X86_FPU_D9, 0xFE) }
func Fcos(s Sink)    { emit(s, X86_FPU_D9, 0xFF) }
