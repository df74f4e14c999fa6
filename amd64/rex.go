package amd64

import (
	"fmt"

	"github.com/colorfulnotion/x86emit/log"
	"github.com/colorfulnotion/x86emit/x86"
)

const (
	REX_BASE = 0x40
	REX_W    = 0x08 // 64-bit operand size
	REX_R    = 0x04 // extends ModRM.reg
	REX_X    = 0x02 // extends SIB.index
	REX_B    = 0x01 // extends ModRM.rm, SIB.base or the opcode register
)

// Rex builds a REX prefix byte from its four flags.
func Rex(w, r, x, b bool) byte {
	rex := byte(REX_BASE)
	if w {
		rex |= REX_W
	}
	if r {
		rex |= REX_R
	}
	if x {
		rex |= REX_X
	}
	if b {
		rex |= REX_B
	}
	return rex
}

// fail reports a contract violation the same way the x86 encoders do.
func fail(op string, format string, args ...interface{}) {
	err := &x86.EncodingError{Op: op, Msg: fmt.Sprintf(format, args...)}
	log.Error(log.EncoderMonitoring, "encoding contract violation", "op", op, "err", err.Msg)
	panic(err)
}

func checkSize(op string, size int) {
	switch size {
	case 1, 2, 4, 8:
	default:
		fail(op, "invalid operand size %d", size)
	}
}

// needsByteRex reports whether a byte access to r must carry a REX prefix to
// select SPL/BPL/SIL/DIL instead of AH/CH/DH/BH.
func needsByteRex(r Reg) bool {
	return r >= RSP && r <= RDI
}

// EmitRex writes the 0x66 prefix for 16-bit operands and then a REX prefix
// when one is needed: 64-bit size, an extended register in any position, or
// a byte access to SPL..DIL. reg and rm are registers, index is ignored when
// it is not extended.
func EmitRex(s x86.Sink, size int, reg, index, rm Reg) {
	emitRex(s, size, reg, index, rm, true)
}

// emitRexMem is EmitRex for a memory operand: rm is a base register and
// never selects a byte register.
func emitRexMem(s x86.Sink, size int, reg, index, base Reg) {
	emitRex(s, size, reg, index, base, false)
}

func emitRex(s x86.Sink, size int, reg, index, rm Reg, rmIsReg bool) {
	if size == 2 {
		s.Append(x86.X86_OP_PREFIX_66)
	}
	rex := Rex(size == 8, reg >= R8, index >= R8, rm >= R8)
	force := size == 1 && (needsByteRex(reg) || (rmIsReg && needsByteRex(rm)))
	if rex != REX_BASE || force {
		s.Append(rex)
	}
}
