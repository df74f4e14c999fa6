// Package asm is a small typed front end over the x86 encoders: operands are
// tagged values, jump targets are labels, and encoding contract violations
// become errors instead of panics.
package asm

import (
	"errors"
	"fmt"

	"github.com/colorfulnotion/x86emit/codebuf"
	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/x86"
)

var (
	ErrUnsupportedOperands = errors.New("unsupported operand combination")
	ErrUnboundLabel        = errors.New("label referenced but never bound")
	ErrLabelBound          = errors.New("label already bound")
)

// Label is a jump target whose position may not be known yet.
type Label struct {
	name string
	pos  int   // -1 until bound
	refs []int // starts of near branches waiting for the position
}

func (l *Label) Name() string { return l.name }

// Bound reports whether l has a position.
func (l *Label) Bound() bool { return l.pos >= 0 }

// Pos is the bound position, or -1.
func (l *Label) Pos() int { return l.pos }

// Assembler encodes into its own buffer. The first error is sticky: later
// instructions are ignored and Assemble reports it.
type Assembler struct {
	buf    *codebuf.Buffer
	labels []*Label
	err    error
}

func New() *Assembler {
	return &Assembler{buf: codebuf.New(0)}
}

// Err returns the sticky error, if any.
func (a *Assembler) Err() error { return a.err }

// Len is the position of the next instruction.
func (a *Assembler) Len() int { return a.buf.Len() }

// Bytes returns what has been emitted so far, unresolved branches included.
func (a *Assembler) Bytes() []byte { return a.buf.Bytes() }

// Reset discards all code, labels and errors.
func (a *Assembler) Reset() {
	a.buf.Reset()
	a.labels = nil
	a.err = nil
}

// Assemble checks that every referenced label is bound and returns a copy of
// the code.
func (a *Assembler) Assemble() ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	for _, l := range a.labels {
		if !l.Bound() && len(l.refs) > 0 {
			return nil, fmt.Errorf("asm: %q: %w", l.name, ErrUnboundLabel)
		}
	}
	return append([]byte(nil), a.buf.Bytes()...), nil
}

// Encode runs a raw encoder under the assembler's error handling. A contract
// violation drops the partial instruction and becomes the sticky error.
func (a *Assembler) Encode(op string, f func(s x86.Sink)) {
	if a.err != nil {
		return
	}
	start := a.buf.Len()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		encErr, ok := r.(*x86.EncodingError)
		if !ok {
			panic(r)
		}
		a.buf.Truncate(start)
		a.err = fmt.Errorf("asm: %s at 0x%x: %w", op, start, encErr)
		log.Debug(log.EncoderMonitoring, "instruction rejected", "op", op, "pos", start, "err", encErr)
	}()
	f(a.buf)
}

func (a *Assembler) unsupported(op string, ops ...Operand) {
	if a.err != nil {
		return
	}
	a.err = fmt.Errorf("asm: %s %v: %w", op, ops, ErrUnsupportedOperands)
}

// NewLabel creates an unbound label.
func (a *Assembler) NewLabel(name string) *Label {
	l := &Label{name: name, pos: -1}
	a.labels = append(a.labels, l)
	return l
}

// Bind places l at the current position and patches the branches that
// were waiting for it.
func (a *Assembler) Bind(l *Label) {
	if a.err != nil {
		return
	}
	if l.Bound() {
		a.err = fmt.Errorf("asm: %q: %w", l.name, ErrLabelBound)
		return
	}
	l.pos = a.buf.Len()
	refs := l.refs
	l.refs = nil
	for _, ref := range refs {
		a.Encode("patch", func(s x86.Sink) { x86.Patch(s, ref, l.pos) })
	}
}

func (a *Assembler) reference(l *Label, emitNear func(s x86.Sink)) {
	a.Encode("branch", func(s x86.Sink) {
		pos := s.Len()
		emitNear(s)
		l.refs = append(l.refs, pos)
	})
}

// Jmp jumps to l. Backward jumps use the short form when it reaches;
// forward jumps are always near.
func (a *Assembler) Jmp(l *Label) {
	if l.Bound() {
		a.Encode("jmp", func(s x86.Sink) { x86.JumpCode(s, l.pos) })
		return
	}
	a.reference(l, func(s x86.Sink) { x86.Jump32(s, 0) })
}

// Jcc branches to l when c holds.
func (a *Assembler) Jcc(c x86.Cond, signed bool, l *Label) {
	if l.Bound() {
		a.Encode("jcc", func(s x86.Sink) { x86.Branch(s, c, l.pos, signed) })
		return
	}
	a.reference(l, func(s x86.Sink) { x86.Branch32(s, c, 0, signed) })
}

// Call calls l.
func (a *Assembler) Call(l *Label) {
	if l.Bound() {
		a.Encode("call", func(s x86.Sink) { x86.CallCode(s, l.pos) })
		return
	}
	a.reference(l, func(s x86.Sink) { x86.CallImm(s, 0) })
}
