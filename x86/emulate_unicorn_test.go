//go:build unicorn
// +build unicorn

package x86

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"
)

const (
	emuCodeBase  = uint64(0x100000)
	emuStackBase = uint64(0x200000)
	emuStackSize = uint64(0x10000)
	emuReturn    = uint64(0x300000)
)

// runGuest executes code as a 32-bit function called with a fake return
// address and returns the unicorn instance for inspection.
func runGuest(t *testing.T, code []byte, regs map[int]uint64) uc.Unicorn {
	t.Helper()
	mu, err := uc.NewUnicorn(uc.ARCH_X86, uc.MODE_32)
	require.NoError(t, err)
	t.Cleanup(func() { mu.Close() })

	require.NoError(t, mu.MemMap(emuCodeBase, 0x1000))
	require.NoError(t, mu.MemWrite(emuCodeBase, code))
	require.NoError(t, mu.MemMap(emuStackBase, emuStackSize))
	require.NoError(t, mu.MemMap(emuReturn, 0x1000))

	sp := emuStackBase + emuStackSize - 0x100
	var ret [4]byte
	binary.LittleEndian.PutUint32(ret[:], uint32(emuReturn))
	require.NoError(t, mu.MemWrite(sp, ret[:]))
	require.NoError(t, mu.RegWrite(uc.X86_REG_ESP, sp))
	require.NoError(t, mu.RegWrite(uc.X86_REG_EBP, 0xBBBB0000))
	for reg, v := range regs {
		require.NoError(t, mu.RegWrite(reg, v))
	}

	require.NoError(t, mu.Start(emuCodeBase, emuReturn))
	return mu
}

func TestEmulatedFunction(t *testing.T) {
	mask := uint32(1<<EBX | 1<<ESI | 1<<EDI)
	code := enc(func(s Sink) {
		Prolog(s, 16, mask)
		MovRegImm(s, EBX, 5)
		MovRegImm(s, ESI, 7)
		MovMembaseReg(s, EBP, -4, ESI, 4)
		MovRegReg(s, EAX, EBX, 4)
		AluRegMembase(s, ADD, EAX, EBP, -4)
		ImulRegRegImm(s, EAX, EAX, 3)
		MovRegImm(s, EDI, 0)
		AluRegImm(s, CMP, EAX, 36)
		SetReg(s, CondEQ, ECX, true)
		WidenReg(s, EDI, ECX, false, false)
		Epilog(s, mask)
	})

	mu := runGuest(t, code, map[int]uint64{
		uc.X86_REG_EBX: 0x1111,
		uc.X86_REG_ESI: 0x2222,
		uc.X86_REG_EDI: 0x3333,
	})

	eax, err := mu.RegRead(uc.X86_REG_EAX)
	require.NoError(t, err)
	require.Equal(t, uint64(36), eax)
	ecx, _ := mu.RegRead(uc.X86_REG_ECX)
	require.Equal(t, uint64(1), ecx&0xFF)

	// callee-saved registers and the frame pointer survive
	for reg, want := range map[int]uint64{
		uc.X86_REG_EBX: 0x1111,
		uc.X86_REG_ESI: 0x2222,
		uc.X86_REG_EDI: 0x3333,
		uc.X86_REG_EBP: 0xBBBB0000,
	} {
		got, err := mu.RegRead(reg)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestEmulatedPatchedLoop(t *testing.T) {
	// eax = sum(1..10) with a forward exit branch patched after the fact
	b := enc(func(s Sink) {
		AluRegReg(s, XOR, EAX, EAX)
		MovRegImm(s, ECX, 10)
		top := s.Len()
		AluRegImm(s, CMP, ECX, 0)
		exit := s.Len()
		Branch32(s, CondEQ, 0, true)
		AluRegReg(s, ADD, EAX, ECX)
		DecReg(s, ECX)
		JumpCode(s, top)
		Patch(s, exit, s.Len())
		Ret(s)
	})
	mu := runGuest(t, b, nil)
	eax, err := mu.RegRead(uc.X86_REG_EAX)
	require.NoError(t, err)
	require.Equal(t, uint64(55), eax)
}
