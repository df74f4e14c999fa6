package x86

import "github.com/colorfulnotion/x86emit/log"

// Enter allocates a frame of size bytes below the saved EBP.
func Enter(s Sink, size uint16) {
	s.Append(X86_OP_ENTER)
	EmitImm16(s, int32(size))
	s.Append(0)
}

func Leave(s Sink) {
	s.Append(X86_OP_LEAVE)
}

// SavedRegs lists the callee-saved registers selected by mask in push order.
func SavedRegs(mask uint32) []Reg {
	regs := make([]Reg, 0, 4)
	for r := EAX; r < NumRegs; r++ {
		if mask&(uint32(1)<<r) != 0 && IsCalleeSaved(r) {
			regs = append(regs, r)
		}
	}
	return regs
}

// Prolog builds the frame and then pushes the callee-saved registers in mask
// in increasing register order. Bits of other registers are ignored.
//
// Resulting layout, from higher to lower addresses: arguments, return address,
// saved EBP, size bytes of locals, saved registers.
func Prolog(s Sink, size uint16, mask uint32) {
	regs := SavedRegs(mask)
	log.Trace(log.FrameMonitoring, "prolog", "size", size, "mask", mask, "saved", regs)
	Enter(s, size)
	for _, r := range regs {
		PushReg(s, r)
	}
}

// Epilog pops the registers saved by Prolog with the same mask, from EDI
// downwards, then tears down the frame and returns.
func Epilog(s Sink, mask uint32) {
	regs := SavedRegs(mask)
	log.Trace(log.FrameMonitoring, "epilog", "mask", mask, "saved", regs)
	for i := len(regs) - 1; i >= 0; i-- {
		PopReg(s, regs[i])
	}
	Leave(s)
	Ret(s)
}

// Canonical no-op fillers, indexed by length.
var paddingSeqs = [8][]byte{
	1: {0x90},                                     // nop
	2: {0x8B, 0xF6},                               // mov esi, esi
	3: {0x8D, 0x6D, 0x00},                         // lea ebp, [ebp+0]
	4: {0x8D, 0x64, 0x24, 0x00},                   // lea esp, [esp+0]
	5: {0x8D, 0x64, 0x24, 0x00, 0x90},             // lea esp, [esp+0]; nop
	6: {0x8D, 0xAD, 0x00, 0x00, 0x00, 0x00},       // lea ebp, [ebp+0] (disp32)
	7: {0x8D, 0xA4, 0x24, 0x00, 0x00, 0x00, 0x00}, // lea esp, [esp+0] (disp32)
}

// PaddingBytes returns the filler for n in [1,7].
func PaddingBytes(n int) []byte {
	if n < 1 || n > 7 {
		fatal("padding", "size %d out of range [1,7]", n)
	}
	return append([]byte(nil), paddingSeqs[n]...)
}

// Padding emits an n byte instruction that does nothing.
func Padding(s Sink, n int) {
	emit(s, PaddingBytes(n)...)
}

// Prefix emits a raw prefix byte (lock, rep, segment override).
func Prefix(s Sink, p byte) { s.Append(p) }

func Nop(s Sink)        { s.Append(X86_OP_NOP) }
func Breakpoint(s Sink) { s.Append(X86_OP_INT3) }
func Cld(s Sink)        { s.Append(X86_OP_CLD) }
func Stosb(s Sink)      { s.Append(X86_OP_STOSB) }
func Stosl(s Sink)      { s.Append(X86_OP_STOSD) }
func Movsb(s Sink)      { s.Append(X86_OP_MOVSB) }
func Movsl(s Sink)      { s.Append(X86_OP_MOVSD) }
func Sahf(s Sink)       { s.Append(X86_OP_SAHF) }
func Wait(s Sink)       { s.Append(X86_OP_WAIT) }
func Rdtsc(s Sink)      { emit(s, X86_OP_PREFIX_0F, X86_OP2_RDTSC) }

// Common prefixes for Prefix.
const (
	X86_PREFIX_LOCK  = 0xF0
	X86_PREFIX_REPNZ = 0xF2
	X86_PREFIX_REP   = 0xF3
	X86_PREFIX_FS    = 0x64
	X86_PREFIX_GS    = 0x65
)
