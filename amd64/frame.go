package amd64

import (
	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/x86"
)

// SavedRegs lists the callee-saved registers selected by mask in push order.
func SavedRegs(mask uint32) []Reg {
	var regs []Reg
	for r := RAX; r < NumRegs; r++ {
		if mask&(uint32(1)<<r) != 0 && IsCalleeSaved(r) {
			regs = append(regs, r)
		}
	}
	return regs
}

// Prolog sets up RBP as frame pointer, reserves size bytes of locals and
// pushes the callee-saved registers in mask in increasing order.
func Prolog(s x86.Sink, size int32, mask uint32) {
	regs := SavedRegs(mask)
	log.Trace(log.FrameMonitoring, "prolog64", "size", size, "mask", mask, "saved", regs)
	PushReg(s, RBP)
	MovRegReg(s, RBP, RSP, 8)
	if size != 0 {
		AluRegImm(s, x86.SUB, RSP, size, 8)
	}
	for _, r := range regs {
		PushReg(s, r)
	}
}

// Epilog undoes Prolog for the same mask and returns.
func Epilog(s x86.Sink, mask uint32) {
	regs := SavedRegs(mask)
	log.Trace(log.FrameMonitoring, "epilog64", "mask", mask, "saved", regs)
	for i := len(regs) - 1; i >= 0; i-- {
		PopReg(s, regs[i])
	}
	x86.Leave(s)
	x86.Ret(s)
}
