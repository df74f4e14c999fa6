// Package script runs assembly listings written in JavaScript. Each
// instruction is a global function that appends to one asm.Assembler:
//
//	prolog(0, ["ebx"])
//	mov("eax", mem("ebp", 8))
//	label("loop")
//	add("eax", 1)
//	dec("ecx")
//	j("nz", "loop")
//	epilog(["ebx"])
//
// Registers may be written as strings or reg("eax"), numbers become
// immediates, and mem/abs/idx build memory operands. Jump targets given as
// strings are label names.
package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/colorfulnotion/x86emit/asm"
	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/x86"
	"github.com/dop251/goja"
)

var ErrBadArgument = errors.New("bad argument")

// Runner owns a JavaScript runtime bound to an assembler. It is not safe
// for concurrent use.
type Runner struct {
	vm     *goja.Runtime
	asm    *asm.Assembler
	labels map[string]*asm.Label
	out    io.Writer
	mode   int
}

// New returns a runner whose print() writes to out. mode (32 or 64) is
// used by dis() when listing the code.
func New(out io.Writer, mode int) *Runner {
	if out == nil {
		out = io.Discard
	}
	r := &Runner{
		vm:     goja.New(),
		asm:    asm.New(),
		labels: make(map[string]*asm.Label),
		out:    out,
		mode:   mode,
	}
	r.install()
	return r
}

// Run executes a whole listing.
func (r *Runner) Run(src string) error {
	_, err := r.eval(src)
	return err
}

// Eval executes one line and returns the bytes it emitted, starting at
// start, along with the value of the expression.
func (r *Runner) Eval(line string) (start int, emitted []byte, value goja.Value, err error) {
	start = r.asm.Len()
	value, err = r.eval(line)
	if err != nil {
		return start, nil, nil, err
	}
	code := r.asm.Bytes()
	return start, append([]byte(nil), code[start:]...), value, nil
}

func (r *Runner) eval(src string) (goja.Value, error) {
	if err := r.asm.Err(); err != nil {
		return nil, err
	}
	v, err := r.vm.RunString(src)
	if asmErr := r.asm.Err(); asmErr != nil {
		log.Debug(log.ScriptMonitoring, "script stopped", "err", asmErr)
		return nil, asmErr
	}
	if err != nil {
		return nil, fmt.Errorf("script: %w", thrown(err))
	}
	return v, nil
}

// thrown digs the Go error out of an exception raised by a builtin.
func thrown(err error) error {
	var exc *goja.Exception
	if !errors.As(err, &exc) {
		return err
	}
	obj, ok := exc.Value().(*goja.Object)
	if !ok {
		return err
	}
	if v := obj.Get("value"); v != nil {
		if goErr, ok := v.Export().(error); ok {
			return goErr
		}
	}
	return err
}

// Bytes resolves all labels and returns the code.
func (r *Runner) Bytes() ([]byte, error) {
	return r.asm.Assemble()
}

// Len is the position of the next instruction.
func (r *Runner) Len() int { return r.asm.Len() }

// Reset drops the code, the labels and any error. Script globals survive.
func (r *Runner) Reset() {
	r.asm.Reset()
	r.labels = make(map[string]*asm.Label)
}

// Labels returns the label names with their positions, -1 for unbound ones.
func (r *Runner) Labels() map[string]int {
	m := make(map[string]int, len(r.labels))
	for name, l := range r.labels {
		m[name] = l.Pos()
	}
	return m
}

func (r *Runner) label(name string) *asm.Label {
	l, ok := r.labels[name]
	if !ok {
		l = r.asm.NewLabel(name)
		r.labels[name] = l
	}
	return l
}

// throw aborts the running script with err.
func (r *Runner) throw(err error) {
	panic(r.vm.NewGoError(err))
}

func (r *Runner) badArg(fn string, format string, args ...interface{}) {
	r.throw(fmt.Errorf("%s: %s: %w", fn, fmt.Sprintf(format, args...), ErrBadArgument))
}

// check turns a sticky assembler error into a script exception so the
// listing stops at the failing line.
func (r *Runner) check() goja.Value {
	if err := r.asm.Err(); err != nil {
		r.throw(err)
	}
	return goja.Undefined()
}

// Listing disassembles everything emitted so far, unresolved branches included.
func (r *Runner) Listing() string { return r.disassemble() }

func (r *Runner) disassemble() string {
	return x86.Disassemble(r.asm.Bytes(), r.mode)
}
