package asm

import "github.com/colorfulnotion/x86emit/x86"

// Mov copies a 32-bit value.
func (a *Assembler) Mov(dst, src Operand) { a.MovN(4, dst, src) }

// MovN copies a value of size 1, 2 or 4 bytes.
func (a *Assembler) MovN(size int, dst, src Operand) {
	switch {
	case dst.IsReg() && src.IsReg():
		a.Encode("mov", func(s x86.Sink) { x86.MovRegReg(s, dst.reg, src.reg, size) })
	case dst.IsReg() && src.IsImm() && size == 4:
		a.Encode("mov", func(s x86.Sink) { x86.MovRegImm(s, dst.reg, src.imm) })
	case dst.IsReg() && src.IsMem():
		m := src.mem
		a.Encode("mov", func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.MovRegMemindex(s, dst.reg, m.Base, m.Disp, m.Index, m.Shift, size)
			case m.Base == x86.NoBaseReg:
				x86.MovRegMem(s, dst.reg, m.Disp, size)
			default:
				x86.MovRegMembase(s, dst.reg, m.Base, m.Disp, size)
			}
		})
	case dst.IsMem() && src.IsReg():
		m := dst.mem
		a.Encode("mov", func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.MovMemindexReg(s, m.Base, m.Disp, m.Index, m.Shift, src.reg, size)
			case m.Base == x86.NoBaseReg:
				x86.MovMemReg(s, m.Disp, src.reg, size)
			default:
				x86.MovMembaseReg(s, m.Base, m.Disp, src.reg, size)
			}
		})
	case dst.IsMem() && src.IsImm():
		m := dst.mem
		a.Encode("mov", func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.MovMemindexImm(s, m.Base, m.Disp, m.Index, m.Shift, src.imm, size)
			case m.Base == x86.NoBaseReg:
				x86.MovMemImm(s, m.Disp, src.imm, size)
			default:
				x86.MovMembaseImm(s, m.Base, m.Disp, src.imm, size)
			}
		})
	default:
		a.unsupported("mov", dst, src)
	}
}

// Alu emits one of the eight Group 1 operations on 32-bit operands.
func (a *Assembler) Alu(op x86.AluOp, dst, src Operand) {
	name := op.String()
	switch {
	case dst.IsReg() && src.IsReg():
		a.Encode(name, func(s x86.Sink) { x86.AluRegReg(s, op, dst.reg, src.reg) })
	case dst.IsReg() && src.IsImm():
		a.Encode(name, func(s x86.Sink) { x86.AluRegImm(s, op, dst.reg, src.imm) })
	case dst.IsReg() && src.IsMem():
		m := src.mem
		a.Encode(name, func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.AluRegMemindex(s, op, dst.reg, m.Base, m.Disp, m.Index, m.Shift)
			case m.Base == x86.NoBaseReg:
				x86.AluRegMem(s, op, dst.reg, m.Disp)
			default:
				x86.AluRegMembase(s, op, dst.reg, m.Base, m.Disp)
			}
		})
	case dst.IsMem() && src.IsReg():
		m := dst.mem
		a.Encode(name, func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.AluMemindexReg(s, op, m.Base, m.Disp, m.Index, m.Shift, src.reg)
			case m.Base == x86.NoBaseReg:
				x86.AluMemReg(s, op, m.Disp, src.reg)
			default:
				x86.AluMembaseReg(s, op, m.Base, m.Disp, src.reg)
			}
		})
	case dst.IsMem() && src.IsImm():
		m := dst.mem
		a.Encode(name, func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.AluMemindexImm(s, op, m.Base, m.Disp, m.Index, m.Shift, src.imm)
			case m.Base == x86.NoBaseReg:
				x86.AluMemImm(s, op, m.Disp, src.imm)
			default:
				x86.AluMembaseImm(s, op, m.Base, m.Disp, src.imm)
			}
		})
	default:
		a.unsupported(name, dst, src)
	}
}

func (a *Assembler) Add(dst, src Operand) { a.Alu(x86.ADD, dst, src) }
func (a *Assembler) Sub(dst, src Operand) { a.Alu(x86.SUB, dst, src) }
func (a *Assembler) And(dst, src Operand) { a.Alu(x86.AND, dst, src) }
func (a *Assembler) Or(dst, src Operand)  { a.Alu(x86.OR, dst, src) }
func (a *Assembler) Xor(dst, src Operand) { a.Alu(x86.XOR, dst, src) }
func (a *Assembler) Cmp(dst, src Operand) { a.Alu(x86.CMP, dst, src) }

// Test ANDs two operands for the flags only.
func (a *Assembler) Test(dst, src Operand) {
	switch {
	case dst.IsReg() && src.IsReg():
		a.Encode("test", func(s x86.Sink) { x86.TestRegReg(s, dst.reg, src.reg) })
	case dst.IsReg() && src.IsImm():
		a.Encode("test", func(s x86.Sink) { x86.TestRegImm(s, dst.reg, src.imm) })
	case dst.IsMem() && !dst.mem.IsIndexed() && src.IsImm():
		m := dst.mem
		a.Encode("test", func(s x86.Sink) {
			if m.Base == x86.NoBaseReg {
				x86.TestMemImm(s, m.Disp, src.imm)
			} else {
				x86.TestMembaseImm(s, m.Base, m.Disp, src.imm)
			}
		})
	case dst.IsMem() && !dst.mem.IsIndexed() && src.IsReg():
		m := dst.mem
		a.Encode("test", func(s x86.Sink) {
			if m.Base == x86.NoBaseReg {
				x86.TestMemReg(s, m.Disp, src.reg)
			} else {
				x86.TestMembaseReg(s, m.Base, m.Disp, src.reg)
			}
		})
	default:
		a.unsupported("test", dst, src)
	}
}

// Shift shifts or rotates dst by an immediate count or by CL.
func (a *Assembler) Shift(op x86.ShiftOp, dst, count Operand) {
	name := op.String()
	simple := dst.IsReg() || (dst.IsMem() && !dst.mem.IsIndexed())
	switch {
	case !simple:
		a.unsupported(name, dst, count)
	case count.IsImm():
		if count.imm < 0 || count.imm > 31 {
			a.unsupported(name, dst, count)
			return
		}
		n := byte(count.imm)
		a.Encode(name, func(s x86.Sink) {
			switch {
			case dst.IsReg():
				x86.ShiftRegImm(s, op, dst.reg, n)
			case dst.mem.Base == x86.NoBaseReg:
				x86.ShiftMemImm(s, op, dst.mem.Disp, n)
			default:
				x86.ShiftMembaseImm(s, op, dst.mem.Base, dst.mem.Disp, n)
			}
		})
	case count.IsReg() && count.reg == x86.ECX:
		a.Encode(name, func(s x86.Sink) {
			switch {
			case dst.IsReg():
				x86.ShiftReg(s, op, dst.reg)
			case dst.mem.Base == x86.NoBaseReg:
				x86.ShiftMem(s, op, dst.mem.Disp)
			default:
				x86.ShiftMembase(s, op, dst.mem.Base, dst.mem.Disp)
			}
		})
	default:
		a.unsupported(name, dst, count)
	}
}

type unaryForms struct {
	reg     func(x86.Sink, x86.Reg)
	mem     func(x86.Sink, int32)
	membase func(x86.Sink, x86.Reg, int32)
}

var unaryOps = map[string]unaryForms{
	"inc": {x86.IncReg, x86.IncMem, x86.IncMembase},
	"dec": {x86.DecReg, x86.DecMem, x86.DecMembase},
	"not": {x86.NotReg, x86.NotMem, x86.NotMembase},
	"neg": {x86.NegReg, x86.NegMem, x86.NegMembase},
}

// Unary emits inc, dec, not or neg.
func (a *Assembler) Unary(name string, dst Operand) {
	f, ok := unaryOps[name]
	switch {
	case !ok:
		a.unsupported(name, dst)
	case dst.IsReg():
		a.Encode(name, func(s x86.Sink) { f.reg(s, dst.reg) })
	case dst.IsMem() && dst.mem.IsAbsolute():
		a.Encode(name, func(s x86.Sink) { f.mem(s, dst.mem.Disp) })
	case dst.IsMem() && !dst.mem.IsIndexed():
		a.Encode(name, func(s x86.Sink) { f.membase(s, dst.mem.Base, dst.mem.Disp) })
	default:
		a.unsupported(name, dst)
	}
}

func (a *Assembler) Push(src Operand) {
	switch {
	case src.IsReg():
		a.Encode("push", func(s x86.Sink) { x86.PushReg(s, src.reg) })
	case src.IsImm():
		a.Encode("push", func(s x86.Sink) { x86.PushImm(s, src.imm) })
	case src.IsMem():
		m := src.mem
		a.Encode("push", func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.PushMemindex(s, m.Base, m.Disp, m.Index, m.Shift)
			case m.Base == x86.NoBaseReg:
				x86.PushMem(s, m.Disp)
			default:
				x86.PushMembase(s, m.Base, m.Disp)
			}
		})
	default:
		a.unsupported("push", src)
	}
}

func (a *Assembler) Pop(dst Operand) {
	switch {
	case dst.IsReg():
		a.Encode("pop", func(s x86.Sink) { x86.PopReg(s, dst.reg) })
	case dst.IsMem() && dst.mem.IsAbsolute():
		a.Encode("pop", func(s x86.Sink) { x86.PopMem(s, dst.mem.Disp) })
	case dst.IsMem() && !dst.mem.IsIndexed():
		a.Encode("pop", func(s x86.Sink) { x86.PopMembase(s, dst.mem.Base, dst.mem.Disp) })
	default:
		a.unsupported("pop", dst)
	}
}

// Lea loads the effective address of a memory operand.
func (a *Assembler) Lea(dst, src Operand) {
	if !dst.IsReg() || !src.IsMem() {
		a.unsupported("lea", dst, src)
		return
	}
	m := src.mem
	a.Encode("lea", func(s x86.Sink) {
		switch {
		case m.IsIndexed():
			x86.LeaMemindex(s, dst.reg, m.Base, m.Disp, m.Index, m.Shift)
		case m.Base == x86.NoBaseReg:
			x86.LeaMem(s, dst.reg, m.Disp)
		default:
			x86.LeaMembase(s, dst.reg, m.Base, m.Disp)
		}
	})
}

// Widen zero or sign extends a byte (or half word) source into dst.
func (a *Assembler) Widen(dst, src Operand, signed, half bool) {
	if !dst.IsReg() {
		a.unsupported("widen", dst, src)
		return
	}
	switch {
	case src.IsReg():
		a.Encode("widen", func(s x86.Sink) { x86.WidenReg(s, dst.reg, src.reg, signed, half) })
	case src.IsMem():
		m := src.mem
		a.Encode("widen", func(s x86.Sink) {
			switch {
			case m.IsIndexed():
				x86.WidenMemindex(s, dst.reg, m.Base, m.Disp, m.Index, m.Shift, signed, half)
			case m.Base == x86.NoBaseReg:
				x86.WidenMem(s, dst.reg, m.Disp, signed, half)
			default:
				x86.WidenMembase(s, dst.reg, m.Base, m.Disp, signed, half)
			}
		})
	default:
		a.unsupported("widen", dst, src)
	}
}

// Mul is the widening EDX:EAX = EAX * src.
func (a *Assembler) Mul(src Operand, signed bool) {
	switch {
	case src.IsReg():
		a.Encode("mul", func(s x86.Sink) { x86.MulReg(s, src.reg, signed) })
	case src.IsMem() && src.mem.IsAbsolute():
		a.Encode("mul", func(s x86.Sink) { x86.MulMem(s, src.mem.Disp, signed) })
	case src.IsMem() && !src.mem.IsIndexed():
		a.Encode("mul", func(s x86.Sink) { x86.MulMembase(s, src.mem.Base, src.mem.Disp, signed) })
	default:
		a.unsupported("mul", src)
	}
}

// Div divides EDX:EAX by src.
func (a *Assembler) Div(src Operand, signed bool) {
	switch {
	case src.IsReg():
		a.Encode("div", func(s x86.Sink) { x86.DivReg(s, src.reg, signed) })
	case src.IsMem() && src.mem.IsAbsolute():
		a.Encode("div", func(s x86.Sink) { x86.DivMem(s, src.mem.Disp, signed) })
	case src.IsMem() && !src.mem.IsIndexed():
		a.Encode("div", func(s x86.Sink) { x86.DivMembase(s, src.mem.Base, src.mem.Disp, signed) })
	default:
		a.unsupported("div", src)
	}
}

// Imul is the truncating dst = dst * src, or dst = src * imm when an
// immediate is given as third operand.
func (a *Assembler) Imul(dst, src Operand, imm ...Operand) {
	if !dst.IsReg() || len(imm) > 1 || (len(imm) == 1 && !imm[0].IsImm()) {
		a.unsupported("imul", append([]Operand{dst, src}, imm...)...)
		return
	}
	simple := src.IsReg() || (src.IsMem() && !src.mem.IsIndexed())
	if !simple {
		a.unsupported("imul", dst, src)
		return
	}
	if len(imm) == 1 {
		v := imm[0].imm
		a.Encode("imul", func(s x86.Sink) {
			switch {
			case src.IsReg():
				x86.ImulRegRegImm(s, dst.reg, src.reg, v)
			case src.mem.Base == x86.NoBaseReg:
				x86.ImulRegMemImm(s, dst.reg, src.mem.Disp, v)
			default:
				x86.ImulRegMembaseImm(s, dst.reg, src.mem.Base, src.mem.Disp, v)
			}
		})
		return
	}
	a.Encode("imul", func(s x86.Sink) {
		switch {
		case src.IsReg():
			x86.ImulRegReg(s, dst.reg, src.reg)
		case src.mem.Base == x86.NoBaseReg:
			x86.ImulRegMem(s, dst.reg, src.mem.Disp)
		default:
			x86.ImulRegMembase(s, dst.reg, src.mem.Base, src.mem.Disp)
		}
	})
}

// Setcc stores 1 or 0 in a byte register or memory byte.
func (a *Assembler) Setcc(c x86.Cond, signed bool, dst Operand) {
	switch {
	case dst.IsReg():
		a.Encode("setcc", func(s x86.Sink) { x86.SetReg(s, c, dst.reg, signed) })
	case dst.IsMem() && dst.mem.IsAbsolute():
		a.Encode("setcc", func(s x86.Sink) { x86.SetMem(s, c, dst.mem.Disp, signed) })
	case dst.IsMem() && !dst.mem.IsIndexed():
		a.Encode("setcc", func(s x86.Sink) { x86.SetMembase(s, c, dst.mem.Base, dst.mem.Disp, signed) })
	default:
		a.unsupported("setcc", dst)
	}
}

// Cmov moves src into dst when c holds.
func (a *Assembler) Cmov(c x86.Cond, signed bool, dst, src Operand) {
	switch {
	case !dst.IsReg():
		a.unsupported("cmov", dst, src)
	case src.IsReg():
		a.Encode("cmov", func(s x86.Sink) { x86.CmovReg(s, c, signed, dst.reg, src.reg) })
	case src.IsMem() && src.mem.IsAbsolute():
		a.Encode("cmov", func(s x86.Sink) { x86.CmovMem(s, c, signed, dst.reg, src.mem.Disp) })
	case src.IsMem() && !src.mem.IsIndexed():
		a.Encode("cmov", func(s x86.Sink) { x86.CmovMembase(s, c, signed, dst.reg, src.mem.Base, src.mem.Disp) })
	default:
		a.unsupported("cmov", dst, src)
	}
}

// JmpTo jumps through a register or memory operand.
func (a *Assembler) JmpTo(target Operand) {
	switch {
	case target.IsReg():
		a.Encode("jmp", func(s x86.Sink) { x86.JumpReg(s, target.reg) })
	case target.IsMem() && target.mem.IsAbsolute():
		a.Encode("jmp", func(s x86.Sink) { x86.JumpMem(s, target.mem.Disp) })
	case target.IsMem() && !target.mem.IsIndexed():
		a.Encode("jmp", func(s x86.Sink) { x86.JumpMembase(s, target.mem.Base, target.mem.Disp) })
	default:
		a.unsupported("jmp", target)
	}
}

// CallTo calls through a register or memory operand.
func (a *Assembler) CallTo(target Operand) {
	switch {
	case target.IsReg():
		a.Encode("call", func(s x86.Sink) { x86.CallReg(s, target.reg) })
	case target.IsMem() && target.mem.IsAbsolute():
		a.Encode("call", func(s x86.Sink) { x86.CallMem(s, target.mem.Disp) })
	case target.IsMem() && !target.mem.IsIndexed():
		a.Encode("call", func(s x86.Sink) { x86.CallMembase(s, target.mem.Base, target.mem.Disp) })
	default:
		a.unsupported("call", target)
	}
}

// Ret returns, popping n bytes of arguments when n is given.
func (a *Assembler) Ret(n ...uint16) {
	var imm uint16
	if len(n) > 0 {
		imm = n[0]
	}
	a.Encode("ret", func(s x86.Sink) { x86.RetImm(s, imm) })
}

func (a *Assembler) Prolog(size uint16, mask uint32) {
	a.Encode("prolog", func(s x86.Sink) { x86.Prolog(s, size, mask) })
}

func (a *Assembler) Epilog(mask uint32) {
	a.Encode("epilog", func(s x86.Sink) { x86.Epilog(s, mask) })
}

func (a *Assembler) Nop() {
	a.Encode("nop", x86.Nop)
}

func (a *Assembler) Padding(n int) {
	a.Encode("padding", func(s x86.Sink) { x86.Padding(s, n) })
}

// Align pads with the canonical fillers up to the next multiple of n.
func (a *Assembler) Align(n int) {
	if n <= 0 || n&(n-1) != 0 {
		a.unsupported("align", Imm(int32(n)))
		return
	}
	for gap := (n - a.Len()%n) % n; gap > 0 && a.err == nil; {
		step := min(gap, 7)
		a.Padding(step)
		gap -= step
	}
}
