package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/colorfulnotion/x86emit/asm"
	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/x86"
	"github.com/dop251/goja"
)

// define registers an instruction builtin. Every call is traced and any
// assembler error is rethrown into the script.
func (r *Runner) define(obj *goja.Object, name string, f func(call goja.FunctionCall)) {
	fn := func(call goja.FunctionCall) goja.Value {
		start := r.asm.Len()
		f(call)
		log.Trace(log.ScriptMonitoring, "instruction", "fn", name, "pos", start, "len", r.asm.Len()-start)
		return r.check()
	}
	if obj == nil {
		r.vm.Set(name, fn)
		return
	}
	obj.Set(name, fn)
}

func (r *Runner) install() {
	r.installOperands()
	r.installInstructions()
	r.installControl()
	r.installAmd64()

	r.vm.Set("here", func(goja.FunctionCall) goja.Value { return r.vm.ToValue(r.asm.Len()) })
	r.vm.Set("dis", func(goja.FunctionCall) goja.Value { return r.vm.ToValue(r.disassemble()) })
	r.vm.Set("print", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, a := range call.Arguments {
			parts[i] = a.String()
		}
		fmt.Fprintln(r.out, strings.Join(parts, " "))
		return goja.Undefined()
	})
}

func (r *Runner) installOperands() {
	r.vm.Set("reg", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(asm.Reg(r.reg("reg", call.Argument(0))))
	})
	r.vm.Set("imm", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(asm.Imm(r.imm32("imm", call.Argument(0))))
	})
	r.vm.Set("abs", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(asm.Abs(r.imm32("abs", call.Argument(0))))
	})
	r.vm.Set("mem", func(call goja.FunctionCall) goja.Value {
		base := r.baseReg("mem", call.Argument(0))
		return r.vm.ToValue(asm.Base(base, r.optImm32("mem", call.Argument(1), 0)))
	})
	r.vm.Set("idx", func(call goja.FunctionCall) goja.Value {
		base := r.baseReg("idx", call.Argument(0))
		disp := r.optImm32("idx", call.Argument(1), 0)
		index := r.reg("idx", call.Argument(2))
		shift := r.optImm32("idx", call.Argument(3), 0)
		if shift < 0 || shift > 3 {
			r.badArg("idx", "scale shift %d out of range [0,3]", shift)
		}
		return r.vm.ToValue(asm.Index(base, disp, index, byte(shift)))
	})
}

func (r *Runner) installInstructions() {
	r.define(nil, "mov", func(c goja.FunctionCall) {
		size := int(r.optImm32("mov", c.Argument(2), 4))
		r.asm.MovN(size, r.operand("mov", c.Argument(0)), r.operand("mov", c.Argument(1)))
	})
	for op := x86.ADD; op <= x86.CMP; op++ {
		op := op
		r.define(nil, op.String(), func(c goja.FunctionCall) {
			r.asm.Alu(op, r.operand(op.String(), c.Argument(0)), r.operand(op.String(), c.Argument(1)))
		})
	}
	r.define(nil, "test", func(c goja.FunctionCall) {
		r.asm.Test(r.operand("test", c.Argument(0)), r.operand("test", c.Argument(1)))
	})
	for _, op := range []x86.ShiftOp{x86.ROL, x86.ROR, x86.RCL, x86.RCR, x86.SHL, x86.SHR, x86.SAR} {
		op := op
		name := op.String()
		r.define(nil, name, func(c goja.FunctionCall) {
			count := asm.Imm(1)
			if !missing(c.Argument(1)) {
				count = r.operand(name, c.Argument(1))
			}
			r.asm.Shift(op, r.operand(name, c.Argument(0)), count)
		})
	}
	for _, name := range []string{"inc", "dec", "not", "neg"} {
		name := name
		r.define(nil, name, func(c goja.FunctionCall) {
			r.asm.Unary(name, r.operand(name, c.Argument(0)))
		})
	}
	r.define(nil, "push", func(c goja.FunctionCall) { r.asm.Push(r.operand("push", c.Argument(0))) })
	r.define(nil, "pop", func(c goja.FunctionCall) { r.asm.Pop(r.operand("pop", c.Argument(0))) })
	r.define(nil, "lea", func(c goja.FunctionCall) {
		r.asm.Lea(r.operand("lea", c.Argument(0)), r.operand("lea", c.Argument(1)))
	})
	for _, name := range []string{"movzx", "movsx"} {
		name := name
		r.define(nil, name, func(c goja.FunctionCall) {
			half := c.Argument(2).ToBoolean()
			r.asm.Widen(r.operand(name, c.Argument(0)), r.operand(name, c.Argument(1)), name == "movsx", half)
		})
	}
	r.define(nil, "mul", func(c goja.FunctionCall) { r.asm.Mul(r.operand("mul", c.Argument(0)), false) })
	r.define(nil, "div", func(c goja.FunctionCall) { r.asm.Div(r.operand("div", c.Argument(0)), false) })
	r.define(nil, "idiv", func(c goja.FunctionCall) { r.asm.Div(r.operand("idiv", c.Argument(0)), true) })
	// imul(src) widens into EDX:EAX, imul(dst, src[, imm]) truncates.
	r.define(nil, "imul", func(c goja.FunctionCall) {
		if missing(c.Argument(1)) {
			r.asm.Mul(r.operand("imul", c.Argument(0)), true)
			return
		}
		dst, src := r.operand("imul", c.Argument(0)), r.operand("imul", c.Argument(1))
		if missing(c.Argument(2)) {
			r.asm.Imul(dst, src)
			return
		}
		r.asm.Imul(dst, src, r.operand("imul", c.Argument(2)))
	})
	r.define(nil, "cdq", func(goja.FunctionCall) { r.asm.Encode("cdq", x86.Cdq) })
	r.define(nil, "set", func(c goja.FunctionCall) {
		cond, signed := r.cond("set", c.Argument(0))
		r.asm.Setcc(cond, signed, r.operand("set", c.Argument(1)))
	})
	r.define(nil, "cmov", func(c goja.FunctionCall) {
		cond, signed := r.cond("cmov", c.Argument(0))
		r.asm.Cmov(cond, signed, r.operand("cmov", c.Argument(1)), r.operand("cmov", c.Argument(2)))
	})
	r.define(nil, "nop", func(goja.FunctionCall) { r.asm.Nop() })
	r.define(nil, "pad", func(c goja.FunctionCall) { r.asm.Padding(int(r.imm32("pad", c.Argument(0)))) })
	r.define(nil, "align", func(c goja.FunctionCall) { r.asm.Align(int(r.imm32("align", c.Argument(0)))) })
}

func (r *Runner) installControl() {
	// label(name) binds name at the current position.
	r.define(nil, "label", func(c goja.FunctionCall) {
		r.asm.Bind(r.label(r.name("label", c.Argument(0))))
	})
	r.define(nil, "jmp", func(c goja.FunctionCall) {
		if name, ok := c.Argument(0).Export().(string); ok {
			r.asm.Jmp(r.label(name))
			return
		}
		r.asm.JmpTo(r.operand("jmp", c.Argument(0)))
	})
	r.define(nil, "j", func(c goja.FunctionCall) {
		cond, signed := r.cond("j", c.Argument(0))
		r.asm.Jcc(cond, signed, r.label(r.name("j", c.Argument(1))))
	})
	r.define(nil, "call", func(c goja.FunctionCall) {
		if name, ok := c.Argument(0).Export().(string); ok {
			r.asm.Call(r.label(name))
			return
		}
		r.asm.CallTo(r.operand("call", c.Argument(0)))
	})
	r.define(nil, "ret", func(c goja.FunctionCall) {
		n := r.optImm32("ret", c.Argument(0), 0)
		if n < 0 || n > math.MaxUint16 {
			r.badArg("ret", "pop count %d out of range", n)
		}
		r.asm.Ret(uint16(n))
	})
	r.define(nil, "prolog", func(c goja.FunctionCall) {
		size := r.optImm32("prolog", c.Argument(0), 0)
		if size < 0 || size > math.MaxUint16 {
			r.badArg("prolog", "frame size %d out of range", size)
		}
		r.asm.Prolog(uint16(size), r.mask("prolog", c.Argument(1), parseReg32))
	})
	r.define(nil, "epilog", func(c goja.FunctionCall) {
		r.asm.Epilog(r.mask("epilog", c.Argument(0), parseReg32))
	})
}

func missing(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func parseReg32(name string) (uint, bool) {
	reg, ok := x86.ParseReg(name)
	return uint(reg), ok
}

func (r *Runner) name(fn string, v goja.Value) string {
	s, ok := v.Export().(string)
	if !ok || s == "" {
		r.badArg(fn, "expected a label name, got %s", v)
	}
	return s
}

func (r *Runner) reg(fn string, v goja.Value) x86.Reg {
	switch x := v.Export().(type) {
	case string:
		if reg, ok := x86.ParseReg(x); ok {
			return reg
		}
		r.badArg(fn, "unknown register %q", x)
	case asm.Operand:
		if x.IsReg() {
			return x.Register()
		}
	}
	r.badArg(fn, "expected a register, got %s", v)
	return 0
}

// baseReg is reg that also accepts null for a missing base.
func (r *Runner) baseReg(fn string, v goja.Value) x86.Reg {
	if missing(v) {
		return x86.NoBaseReg
	}
	return r.reg(fn, v)
}

func (r *Runner) integer(fn string, v goja.Value) int64 {
	switch x := v.Export().(type) {
	case int64:
		return x
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x)
		}
	}
	r.badArg(fn, "expected an integer, got %s", v)
	return 0
}

// imm32 accepts signed and unsigned 32-bit values; 0xFFFFFFFF is -1.
func (r *Runner) imm32(fn string, v goja.Value) int32 {
	n := r.integer(fn, v)
	if n < math.MinInt32 || n > math.MaxUint32 {
		r.badArg(fn, "%d does not fit 32 bits", n)
	}
	return int32(uint32(n))
}

func (r *Runner) optImm32(fn string, v goja.Value, def int32) int32 {
	if missing(v) {
		return def
	}
	return r.imm32(fn, v)
}

func (r *Runner) operand(fn string, v goja.Value) asm.Operand {
	if missing(v) {
		r.badArg(fn, "missing operand")
	}
	switch x := v.Export().(type) {
	case asm.Operand:
		return x
	case string:
		return asm.Reg(r.reg(fn, v))
	case int64, float64:
		return asm.Imm(r.imm32(fn, v))
	}
	r.badArg(fn, "cannot use %s as an operand", v)
	return asm.Operand{}
}

func (r *Runner) cond(fn string, v goja.Value) (x86.Cond, bool) {
	s, _ := v.Export().(string)
	c, signed, ok := x86.ParseCond(s)
	if !ok {
		r.badArg(fn, "unknown condition %s", v)
	}
	return c, signed
}

// mask accepts a bit mask or an array of register names.
func (r *Runner) mask(fn string, v goja.Value, parse func(string) (uint, bool)) uint32 {
	if missing(v) {
		return 0
	}
	list, ok := v.Export().([]interface{})
	if !ok {
		return uint32(r.integer(fn, v))
	}
	var m uint32
	for _, item := range list {
		name, _ := item.(string)
		bit, ok := parse(name)
		if !ok {
			r.badArg(fn, "unknown register %v", item)
		}
		m |= 1 << bit
	}
	return m
}
