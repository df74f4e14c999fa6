package x86

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// DecodedInst is one instruction of a decoded listing.
type DecodedInst struct {
	Offset int
	Bytes  []byte
	Inst   x86asm.Inst
	Err    error // set when the bytes at Offset do not decode; Bytes is then one byte
}

// Text is the Intel syntax of the instruction, or a db line.
func (d DecodedInst) Text() string {
	if d.Err != nil {
		return fmt.Sprintf("db 0x%02x", d.Bytes[0])
	}
	return strings.ToLower(x86asm.IntelSyntax(d.Inst, uint64(d.Offset), nil))
}

// DisassembleInstructions decodes code in 32 or 64 bit mode. Bytes that do not
// decode are reported one at a time and decoding resumes after them.
func DisassembleInstructions(code []byte, mode int) []DecodedInst {
	var out []DecodedInst
	offset := 0
	for offset < len(code) {
		inst, err := x86asm.Decode(code[offset:], mode)
		if err != nil {
			out = append(out, DecodedInst{Offset: offset, Bytes: code[offset : offset+1], Err: err})
			offset++
			continue
		}
		out = append(out, DecodedInst{Offset: offset, Bytes: code[offset : offset+inst.Len], Inst: inst})
		offset += inst.Len
	}
	return out
}

// Disassemble renders code as an offset / hex / mnemonic listing.
func Disassemble(code []byte, mode int) string {
	var sb strings.Builder
	for _, d := range DisassembleInstructions(code, mode) {
		var hexBytes []string
		for _, b := range d.Bytes {
			hexBytes = append(hexBytes, fmt.Sprintf("%02x", b))
		}
		sb.WriteString(fmt.Sprintf("0x%04x: %-22s %s\n", d.Offset, strings.Join(hexBytes, " "), d.Text()))
	}
	return sb.String()
}
