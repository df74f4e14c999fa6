// Package x86 encodes IA-32 instructions into bytes for a JIT backend.
//
// Every encoder appends one instruction to a Sink and returns. There is no
// intermediate representation: callers that need to resolve forward jumps keep
// the instruction's start position and call Patch once the target is known.
//
// Caller contract violations (bad operand width, a non byte-addressable
// register in a byte operation, an unknown condition code, patching something
// that is not a branch) panic with *EncodingError.
package x86

import (
	"fmt"

	"github.com/colorfulnotion/x86emit/log"
)

// Sink receives encoded bytes.
type Sink interface {
	// Append writes b at the current end.
	Append(b byte)
	// EmitAt overwrites the already written byte at pos.
	EmitAt(b byte, pos int)
	// GetAt reads the already written byte at pos.
	GetAt(pos int) byte
	// Len is the current end, i.e. the position of the next instruction.
	Len() int
}

// EncodingError describes a caller contract violation detected while encoding.
type EncodingError struct {
	Op  string
	Msg string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("x86: %s: %s", e.Op, e.Msg)
}

func fatal(op string, format string, args ...interface{}) {
	err := &EncodingError{Op: op, Msg: fmt.Sprintf(format, args...)}
	log.Error(log.EncoderMonitoring, "encoding contract violation", "op", op, "err", err.Msg)
	panic(err)
}

func emit(s Sink, bytes ...byte) {
	for _, b := range bytes {
		s.Append(b)
	}
}
