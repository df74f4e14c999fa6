package x86

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// IsImm8 reports whether v fits a sign-extended 8-bit immediate.
func IsImm8[T constraints.Integer](v T) bool {
	return int64(v) >= -128 && int64(v) <= 127
}

// IsImm16 reports whether v is accepted as a 16-bit immediate. The accepted
// range is [-65536, 65535], wider than int16; callers rely on it.
func IsImm16[T constraints.Integer](v T) bool {
	return int64(v) >= -(1<<16) && int64(v) <= (1<<16)-1
}

func EmitImm8(s Sink, v int32) {
	s.Append(byte(v))
}

func EmitImm16(s Sink, v int32) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	emit(s, b[:]...)
}

func EmitImm32(s Sink, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	emit(s, b[:]...)
}

// PatchImm8 overwrites the byte at pos with v.
func PatchImm8(s Sink, pos int, v int32) {
	s.EmitAt(byte(v), pos)
}

// PatchImm32 overwrites the four bytes starting at pos with v, little-endian.
func PatchImm32(s Sink, pos int, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	for i, x := range b {
		s.EmitAt(x, pos+i)
	}
}

// ReadImm32 reads back a little-endian 32-bit field at pos.
func ReadImm32(s Sink, pos int) int32 {
	b := [4]byte{s.GetAt(pos), s.GetAt(pos + 1), s.GetAt(pos + 2), s.GetAt(pos + 3)}
	return int32(binary.LittleEndian.Uint32(b[:]))
}

// IsImm32 reports whether v fits a sign-extended 32-bit immediate.
func IsImm32[T constraints.Integer](v T) bool {
	return int64(v) >= -(1<<31) && int64(v) <= (1<<31)-1
}
