package script

import (
	"math"

	"github.com/colorfulnotion/x86emit/amd64"
	"github.com/colorfulnotion/x86emit/x86"
	"github.com/dop251/goja"
)

// mem64 is a [base+disp] operand of the x64 namespace.
type mem64 struct {
	base amd64.Reg
	disp int32
}

// installAmd64 exposes the 64-bit encoders under the x64 object:
//
//	x64.prolog(16, ["rbx", "r12"])
//	x64.mov("rax", x64.mem("rdi", 8))
//	x64.add("rax", 1)
//	x64.epilog(["rbx", "r12"])
//
// Sizes default to 8 bytes.
func (r *Runner) installAmd64() {
	x64 := r.vm.NewObject()
	x64.Set("mem", func(c goja.FunctionCall) goja.Value {
		return r.vm.ToValue(mem64{base: r.reg64("x64.mem", c.Argument(0)), disp: r.optImm32("x64.mem", c.Argument(1), 0)})
	})

	r.define(x64, "mov", func(c goja.FunctionCall) {
		size := int(r.optImm32("x64.mov", c.Argument(2), 8))
		dst, src := c.Argument(0).Export(), c.Argument(1).Export()
		switch {
		case isMem64(dst):
			m := dst.(mem64)
			reg := r.reg64("x64.mov", c.Argument(1))
			r.asm.Encode("mov", func(s x86.Sink) { amd64.MovMembaseReg(s, m.base, m.disp, reg, size) })
		case isMem64(src):
			m := src.(mem64)
			reg := r.reg64("x64.mov", c.Argument(0))
			r.asm.Encode("mov", func(s x86.Sink) { amd64.MovRegMembase(s, reg, m.base, m.disp, size) })
		case isNumber(src):
			reg := r.reg64("x64.mov", c.Argument(0))
			imm := r.integer("x64.mov", c.Argument(1))
			r.asm.Encode("mov", func(s x86.Sink) { amd64.MovRegImm(s, reg, imm) })
		default:
			dreg, reg := r.reg64("x64.mov", c.Argument(0)), r.reg64("x64.mov", c.Argument(1))
			r.asm.Encode("mov", func(s x86.Sink) { amd64.MovRegReg(s, dreg, reg, size) })
		}
	})
	r.define(x64, "lea", func(c goja.FunctionCall) {
		reg := r.reg64("x64.lea", c.Argument(0))
		m, ok := c.Argument(1).Export().(mem64)
		if !ok {
			r.badArg("x64.lea", "expected x64.mem, got %s", c.Argument(1))
		}
		r.asm.Encode("lea", func(s x86.Sink) { amd64.LeaMembase(s, reg, m.base, m.disp) })
	})
	for op := x86.ADD; op <= x86.CMP; op++ {
		op := op
		fn := "x64." + op.String()
		r.define(x64, op.String(), func(c goja.FunctionCall) {
			size := int(r.optImm32(fn, c.Argument(2), 8))
			reg := r.reg64(fn, c.Argument(0))
			src := c.Argument(1)
			switch x := src.Export().(type) {
			case mem64:
				r.asm.Encode(op.String(), func(s x86.Sink) { amd64.AluRegMembase(s, op, reg, x.base, x.disp, size) })
			case int64, float64:
				imm := r.imm32(fn, src)
				r.asm.Encode(op.String(), func(s x86.Sink) { amd64.AluRegImm(s, op, reg, imm, size) })
			default:
				sreg := r.reg64(fn, src)
				r.asm.Encode(op.String(), func(s x86.Sink) { amd64.AluRegReg(s, op, reg, sreg, size) })
			}
		})
	}
	for _, op := range []x86.ShiftOp{x86.ROL, x86.ROR, x86.RCL, x86.RCR, x86.SHL, x86.SHR, x86.SAR} {
		op := op
		fn := "x64." + op.String()
		r.define(x64, op.String(), func(c goja.FunctionCall) {
			reg := r.reg64(fn, c.Argument(0))
			count := r.optImm32(fn, c.Argument(1), 1)
			size := int(r.optImm32(fn, c.Argument(2), 8))
			if count < 0 || count > 63 {
				r.badArg(fn, "shift count %d out of range", count)
			}
			r.asm.Encode(op.String(), func(s x86.Sink) { amd64.ShiftRegImm(s, op, reg, byte(count), size) })
		})
	}
	r.define(x64, "test", func(c goja.FunctionCall) {
		dreg, reg := r.reg64("x64.test", c.Argument(0)), r.reg64("x64.test", c.Argument(1))
		size := int(r.optImm32("x64.test", c.Argument(2), 8))
		r.asm.Encode("test", func(s x86.Sink) { amd64.TestRegReg(s, dreg, reg, size) })
	})
	r.define(x64, "push", func(c goja.FunctionCall) {
		reg := r.reg64("x64.push", c.Argument(0))
		r.asm.Encode("push", func(s x86.Sink) { amd64.PushReg(s, reg) })
	})
	r.define(x64, "pop", func(c goja.FunctionCall) {
		reg := r.reg64("x64.pop", c.Argument(0))
		r.asm.Encode("pop", func(s x86.Sink) { amd64.PopReg(s, reg) })
	})
	r.define(x64, "prolog", func(c goja.FunctionCall) {
		size := r.integer("x64.prolog", c.Argument(0))
		if size < 0 || size > math.MaxInt32 {
			r.badArg("x64.prolog", "frame size %d out of range", size)
		}
		mask := r.mask("x64.prolog", c.Argument(1), parseReg64)
		r.asm.Encode("prolog", func(s x86.Sink) { amd64.Prolog(s, int32(size), mask) })
	})
	r.define(x64, "epilog", func(c goja.FunctionCall) {
		mask := r.mask("x64.epilog", c.Argument(0), parseReg64)
		r.asm.Encode("epilog", func(s x86.Sink) { amd64.Epilog(s, mask) })
	})
	r.vm.Set("x64", x64)
}

func isMem64(v interface{}) bool {
	_, ok := v.(mem64)
	return ok
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

func parseReg64(name string) (uint, bool) {
	reg, ok := amd64.ParseReg(name)
	return uint(reg), ok
}

func (r *Runner) reg64(fn string, v goja.Value) amd64.Reg {
	name, _ := v.Export().(string)
	reg, ok := amd64.ParseReg(name)
	if !ok {
		r.badArg(fn, "expected a 64-bit register name, got %s", v)
	}
	return reg
}
