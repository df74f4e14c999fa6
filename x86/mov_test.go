package x86

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMovRegImmAllRegisters(t *testing.T) {
	for r := EAX; r <= EDI; r++ {
		for _, v := range []int32{0, 1, -1, 0x12345678, -0x7FFFFFFF} {
			want := []byte{0xB8 + byte(r), 0, 0, 0, 0}
			binary.LittleEndian.PutUint32(want[1:], uint32(v))
			got := enc(func(s Sink) { MovRegImm(s, r, v) })
			require.Equal(t, want, got, "mov %s, %d", r, v)
		}
	}
	require.Equal(t, []byte{0xB8, 0x78, 0x56, 0x34, 0x12}, enc(func(s Sink) { MovRegImm(s, EAX, 0x12345678) }))
}

func TestMovEncodings(t *testing.T) {
	runEncCases(t, []encCase{
		{"mov eax, ecx", func(s Sink) { MovRegReg(s, EAX, ECX, 4) }, []byte{0x8B, 0xC1}},
		{"mov ax, cx", func(s Sink) { MovRegReg(s, EAX, ECX, 2) }, []byte{0x66, 0x8B, 0xC1}},
		{"mov al, cl", func(s Sink) { MovRegReg(s, EAX, ECX, 1) }, []byte{0x8A, 0xC1}},
		{"mov [0x40], eax", func(s Sink) { MovMemReg(s, 0x40, EAX, 4) }, []byte{0x89, 0x05, 0x40, 0x00, 0x00, 0x00}},
		{"mov [0x40], dl", func(s Sink) { MovMemReg(s, 0x40, EDX, 1) }, []byte{0x88, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"mov [ecx], eax", func(s Sink) { MovRegpReg(s, ECX, EAX, 4) }, []byte{0x89, 0x01}},
		{"mov [ebp], eax", func(s Sink) { MovRegpReg(s, EBP, EAX, 4) }, []byte{0x89, 0x45, 0x00}},
		{"mov [ebp-4], eax", func(s Sink) { MovMembaseReg(s, EBP, -4, EAX, 4) }, []byte{0x89, 0x45, 0xFC}},
		{"mov [esp+8], cx", func(s Sink) { MovMembaseReg(s, ESP, 8, ECX, 2) }, []byte{0x66, 0x89, 0x4C, 0x24, 0x08}},
		{"mov [eax+ebx*4+4], edx", func(s Sink) { MovMemindexReg(s, EAX, 4, EBX, 2, EDX, 4) }, []byte{0x89, 0x54, 0x98, 0x04}},
		{"mov eax, [0x40]", func(s Sink) { MovRegMem(s, EAX, 0x40, 4) }, []byte{0x8B, 0x05, 0x40, 0x00, 0x00, 0x00}},
		{"mov esi, [ebp+8]", func(s Sink) { MovRegMembase(s, ESI, EBP, 8, 4) }, []byte{0x8B, 0x75, 0x08}},
		{"mov bl, [esi]", func(s Sink) { MovRegMembase(s, EBX, ESI, 0, 1) }, []byte{0x8A, 0x1E}},
		{"mov eax, [ecx*4+0x100]", func(s Sink) { MovRegMemindex(s, EAX, NoBaseReg, 0x100, ECX, 2, 4) }, []byte{0x8B, 0x04, 0x8D, 0x00, 0x01, 0x00, 0x00}},
		{"mov byte [0x40], 7", func(s Sink) { MovMemImm(s, 0x40, 7, 1) }, []byte{0xC6, 0x05, 0x40, 0x00, 0x00, 0x00, 0x07}},
		{"mov word [0x40], 7", func(s Sink) { MovMemImm(s, 0x40, 7, 2) }, []byte{0x66, 0xC7, 0x05, 0x40, 0x00, 0x00, 0x00, 0x07, 0x00}},
		{"mov [0x40], 7", func(s Sink) { MovMemImm(s, 0x40, 7, 4) }, []byte{0xC7, 0x05, 0x40, 0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0x00}},
		{"mov [ebp-4], 0", func(s Sink) { MovMembaseImm(s, EBP, -4, 0, 4) }, []byte{0xC7, 0x45, 0xFC, 0x00, 0x00, 0x00, 0x00}},
		{"mov byte [eax+ecx], 1", func(s Sink) { MovMemindexImm(s, EAX, 0, ECX, 0, 1, 1) }, []byte{0xC6, 0x04, 0x08, 0x01}},
		{"lea eax, [0x40]", func(s Sink) { LeaMem(s, EAX, 0x40) }, []byte{0x8D, 0x05, 0x40, 0x00, 0x00, 0x00}},
		{"lea eax, [esp+8]", func(s Sink) { LeaMembase(s, EAX, ESP, 8) }, []byte{0x8D, 0x44, 0x24, 0x08}},
		{"lea ecx, [eax+eax*2]", func(s Sink) { LeaMemindex(s, ECX, EAX, 0, EAX, 1) }, []byte{0x8D, 0x0C, 0x40}},
		{"movzx eax, cl", func(s Sink) { WidenReg(s, EAX, ECX, false, false) }, []byte{0x0F, 0xB6, 0xC1}},
		{"movsx eax, cl", func(s Sink) { WidenReg(s, EAX, ECX, true, false) }, []byte{0x0F, 0xBE, 0xC1}},
		{"movzx eax, si", func(s Sink) { WidenReg(s, EAX, ESI, false, true) }, []byte{0x0F, 0xB7, 0xC6}},
		{"movsx eax, cx", func(s Sink) { WidenReg(s, EAX, ECX, true, true) }, []byte{0x0F, 0xBF, 0xC1}},
		{"movzx edx, byte [0x40]", func(s Sink) { WidenMem(s, EDX, 0x40, false, false) }, []byte{0x0F, 0xB6, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"movsx eax, word [ebp+8]", func(s Sink) { WidenMembase(s, EAX, EBP, 8, true, true) }, []byte{0x0F, 0xBF, 0x45, 0x08}},
		{"movzx eax, byte [esi+ecx]", func(s Sink) { WidenMemindex(s, EAX, ESI, 0, ECX, 0, false, false) }, []byte{0x0F, 0xB6, 0x04, 0x0E}},
		{"xchg eax, ecx", func(s Sink) { XchgRegReg(s, EAX, ECX, 4) }, []byte{0x87, 0xC8}},
		{"xchg al, cl", func(s Sink) { XchgRegReg(s, EAX, ECX, 1) }, []byte{0x86, 0xC8}},
		{"xchg [0x40], edx", func(s Sink) { XchgMemReg(s, 0x40, EDX, 4) }, []byte{0x87, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"xchg [ebx], eax", func(s Sink) { XchgMembaseReg(s, EBX, 0, EAX, 4) }, []byte{0x87, 0x03}},
		{"cmpxchg ecx, edx", func(s Sink) { CmpxchgRegReg(s, ECX, EDX) }, []byte{0x0F, 0xB1, 0xD1}},
		{"cmpxchg [0x40], edx", func(s Sink) { CmpxchgMemReg(s, 0x40, EDX) }, []byte{0x0F, 0xB1, 0x15, 0x40, 0x00, 0x00, 0x00}},
		{"cmpxchg [esi+4], ecx", func(s Sink) { CmpxchgMembaseReg(s, ESI, 4, ECX) }, []byte{0x0F, 0xB1, 0x4E, 0x04}},
	})
}

func TestMovContract(t *testing.T) {
	for _, size := range []int{0, 3, 8} {
		err := requirePanics(t, func() { enc(func(s Sink) { MovRegReg(s, EAX, ECX, size) }) })
		require.Equal(t, "mov_reg_reg", err.Op)
		requirePanics(t, func() { enc(func(s Sink) { MovMemImm(s, 0, 0, size) }) })
	}
	requirePanics(t, func() { enc(func(s Sink) { MovRegReg(s, ESI, EAX, 1) }) })
	requirePanics(t, func() { enc(func(s Sink) { MovMembaseReg(s, EAX, 0, EDI, 1) }) })
	requirePanics(t, func() { enc(func(s Sink) { WidenReg(s, EAX, ESI, false, false) }) })
	requirePanics(t, func() { enc(func(s Sink) { XchgRegReg(s, EAX, EBP, 1) }) })
}

func TestStackEncodings(t *testing.T) {
	runEncCases(t, []encCase{
		{"push ebx", func(s Sink) { PushReg(s, EBX) }, []byte{0x53}},
		{"push [eax]", func(s Sink) { PushRegp(s, EAX) }, []byte{0xFF, 0x30}},
		{"push [0x40]", func(s Sink) { PushMem(s, 0x40) }, []byte{0xFF, 0x35, 0x40, 0x00, 0x00, 0x00}},
		{"push [ebp+8]", func(s Sink) { PushMembase(s, EBP, 8) }, []byte{0xFF, 0x75, 0x08}},
		{"push [eax+ecx*4]", func(s Sink) { PushMemindex(s, EAX, 0, ECX, 2) }, []byte{0xFF, 0x34, 0x88}},
		{"push 1", func(s Sink) { PushImm(s, 1) }, []byte{0x6A, 0x01}},
		{"push -128", func(s Sink) { PushImm(s, -128) }, []byte{0x6A, 0x80}},
		{"push 300", func(s Sink) { PushImm(s, 300) }, []byte{0x68, 0x2C, 0x01, 0x00, 0x00}},
		{"pop edi", func(s Sink) { PopReg(s, EDI) }, []byte{0x5F}},
		{"pop [0x1000]", func(s Sink) { PopMem(s, 0x1000) }, []byte{0x8F, 0x05, 0x00, 0x10, 0x00, 0x00}},
		{"pop [esp+4]", func(s Sink) { PopMembase(s, ESP, 4) }, []byte{0x8F, 0x44, 0x24, 0x04}},
		{"pushad", Pushad, []byte{0x60}},
		{"popad", Popad, []byte{0x61}},
		{"pushfd", Pushfd, []byte{0x9C}},
		{"popfd", Popfd, []byte{0x9D}},
	})
}
