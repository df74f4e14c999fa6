package x86

// Cond is a condition code. Its value indexes both condition tables.
type Cond byte

const (
	CondEQ  Cond = iota // equal / zero
	CondNE              // not equal
	CondLT              // less (signed) / below (unsigned)
	CondLE              // less or equal / below or equal
	CondGT              // greater / above
	CondGE              // greater or equal / above or equal
	CondLZ              // sign set
	CondGEZ             // sign clear
	CondP               // parity even
	CondNP              // parity odd
	CondO               // overflow
	CondNO              // no overflow

	NumConds = 12
)

// Aliases
const (
	CondZ  = CondEQ
	CondNZ = CondNE
	CondS  = CondLZ
	CondNS = CondGEZ
	CondPE = CondP
	CondPO = CondNP
	CondB  = CondLT
	CondBE = CondLE
	CondA  = CondGT
	CondAE = CondGE
	CondC  = CondLT
	CondNC = CondGE
)

// Short-form Jcc opcodes for unsigned and signed comparisons.
var (
	unsignedCondTable = [NumConds]byte{0x74, 0x75, 0x72, 0x76, 0x77, 0x73, 0x78, 0x79, 0x7A, 0x7B, 0x70, 0x71}
	signedCondTable   = [NumConds]byte{0x74, 0x75, 0x7C, 0x7E, 0x7F, 0x7D, 0x78, 0x79, 0x7A, 0x7B, 0x70, 0x71}
)

var condNames = [NumConds]string{"eq", "ne", "lt", "le", "gt", "ge", "lz", "gez", "p", "np", "o", "no"}

func (c Cond) String() string {
	if c < NumConds {
		return condNames[c]
	}
	return "cond?"
}

type condName struct {
	c      Cond
	signed bool
}

var condMnemonics = map[string]condName{
	"e": {CondEQ, true}, "z": {CondEQ, true}, "ne": {CondNE, true}, "nz": {CondNE, true},
	"l": {CondLT, true}, "le": {CondLE, true}, "g": {CondGT, true}, "ge": {CondGE, true},
	"b": {CondLT, false}, "c": {CondLT, false}, "be": {CondLE, false},
	"a": {CondGT, false}, "ae": {CondGE, false}, "nc": {CondGE, false},
	"s": {CondLZ, true}, "ns": {CondGEZ, true},
	"p": {CondP, true}, "pe": {CondP, true}, "np": {CondNP, true}, "po": {CondNP, true},
	"o": {CondO, true}, "no": {CondNO, true},
}

// ParseCond accepts either a canonical condition name (eq, lt, gez, ...) or a
// Jcc suffix (e, b, ae, g, ...). signed tells which table the suffix implies.
func ParseCond(name string) (c Cond, signed bool, ok bool) {
	for i, n := range condNames {
		if n == name {
			return Cond(i), true, true
		}
	}
	cn, ok := condMnemonics[name]
	return cn.c, cn.signed, ok
}

// CondOpcode returns the short-form Jcc opcode of c.
func CondOpcode(c Cond, signed bool) byte {
	if c >= NumConds {
		fatal("cond", "condition code %d out of range", c)
	}
	if signed {
		return signedCondTable[c]
	}
	return unsignedCondTable[c]
}

// CondTable returns a copy of the signed or unsigned table.
func CondTable(signed bool) [NumConds]byte {
	if signed {
		return signedCondTable
	}
	return unsignedCondTable
}

// SetReg encodes setcc into the low byte of reg.
func SetReg(s Sink, c Cond, reg Reg, signed bool) {
	checkByteReg("set_reg", reg)
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)+X86_CC_SETCC_DELTA)
	RegEmit(s, 0, reg)
}

func SetMem(s Sink, c Cond, mem int32, signed bool) {
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)+X86_CC_SETCC_DELTA)
	MemEmit(s, 0, mem)
}

func SetMembase(s Sink, c Cond, base Reg, disp int32, signed bool) {
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)+X86_CC_SETCC_DELTA)
	MembaseEmit(s, 0, base, disp)
}

// CmovReg encodes `cmovcc dreg, reg`.
func CmovReg(s Sink, c Cond, signed bool, dreg, reg Reg) {
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)-X86_CC_CMOV_DELTA)
	RegEmit(s, byte(dreg), reg)
}

func CmovMem(s Sink, c Cond, signed bool, reg Reg, mem int32) {
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)-X86_CC_CMOV_DELTA)
	MemEmit(s, byte(reg), mem)
}

func CmovMembase(s Sink, c Cond, signed bool, reg Reg, base Reg, disp int32) {
	emit(s, X86_OP_PREFIX_0F, CondOpcode(c, signed)-X86_CC_CMOV_DELTA)
	MembaseEmit(s, byte(reg), base, disp)
}
