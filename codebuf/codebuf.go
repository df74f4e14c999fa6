// Package codebuf provides the growable byte buffer that instruction
// encoders append to and patch in place.
package codebuf

import (
	"fmt"
	"strings"
)

const defaultCapacity = 256

// Buffer is an append-only code buffer with in-place overwrite of
// already written bytes. It is owned by a single encoding session.
type Buffer struct {
	code []byte
}

// New returns a buffer with room for capacity bytes before it has to grow.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Buffer{code: make([]byte, 0, capacity)}
}

// Append writes v at the current end.
func (b *Buffer) Append(v byte) {
	b.code = append(b.code, v)
}

// EmitAt overwrites the already written byte at pos.
func (b *Buffer) EmitAt(v byte, pos int) {
	b.check(pos)
	b.code[pos] = v
}

// GetAt reads the already written byte at pos.
func (b *Buffer) GetAt(pos int) byte {
	b.check(pos)
	return b.code[pos]
}

// Len is the current end of the buffer.
func (b *Buffer) Len() int {
	return len(b.code)
}

// Bytes returns the written code. The slice aliases the buffer until the next Append.
func (b *Buffer) Bytes() []byte {
	return b.code
}

// Grow makes room for n more bytes.
func (b *Buffer) Grow(n int) {
	if cap(b.code)-len(b.code) >= n {
		return
	}
	grown := make([]byte, len(b.code), 2*cap(b.code)+n)
	copy(grown, b.code)
	b.code = grown
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() {
	b.code = b.code[:0]
}

// Truncate drops everything written at or after n.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.code) {
		panic(fmt.Sprintf("codebuf: truncate to %d outside [0,%d]", n, len(b.code)))
	}
	b.code = b.code[:n]
}

// String renders the buffer as space separated hex bytes.
func (b *Buffer) String() string {
	var sb strings.Builder
	for i, v := range b.code {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}

func (b *Buffer) check(pos int) {
	if pos < 0 || pos >= len(b.code) {
		panic(fmt.Sprintf("codebuf: position %d outside written range [0,%d)", pos, len(b.code)))
	}
}
