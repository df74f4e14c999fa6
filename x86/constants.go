package x86

// ================================================================================================
// IA-32 Instruction Constants
// ================================================================================================

// ModRM mode field
const (
	X86_MOD_INDIRECT        = 0x00 // [reg] or [disp32]
	X86_MOD_INDIRECT_DISP8  = 0x01 // [reg + disp8]
	X86_MOD_INDIRECT_DISP32 = 0x02 // [reg + disp32]
	X86_MOD_REGISTER        = 0x03 // reg
)

// ModRM / SIB special field values
const (
	X86_RM_SIB      = 0x04 // rm=100: SIB byte follows
	X86_RM_DISP32   = 0x05 // mod=00 rm=101: absolute disp32
	X86_SIB_NOBASE  = 0x05 // SIB base=101 with mod=00: no base, disp32
	X86_SIB_NOINDEX = 0x04 // SIB index=100: no index
)

// Primary opcodes
const (
	X86_OP_ALU_RM_R        = 0x01 // (op<<3)+1: ALU r/m, r
	X86_OP_ALU_R8_RM8      = 0x02 // (op<<3)+2: ALU r8, r/m8
	X86_OP_ALU_R_RM        = 0x03 // (op<<3)+3: ALU r, r/m
	X86_OP_ALU_EAX_IMM     = 0x05 // (op<<3)+5: ALU eAX, imm
	X86_OP_PREFIX_0F       = 0x0F // two-byte opcode escape
	X86_OP_INC_R           = 0x40 // INC r32 (+ reg)
	X86_OP_DEC_R           = 0x48 // DEC r32 (+ reg)
	X86_OP_PUSH_R          = 0x50 // PUSH r32 (+ reg)
	X86_OP_POP_R           = 0x58 // POP r32 (+ reg)
	X86_OP_PUSHAD          = 0x60 // PUSHAD
	X86_OP_POPAD           = 0x61 // POPAD
	X86_OP_PREFIX_66       = 0x66 // operand-size override
	X86_OP_PUSH_IMM32      = 0x68 // PUSH imm32
	X86_OP_IMUL_R_RM_IMM32 = 0x69 // IMUL r, r/m, imm32
	X86_OP_PUSH_IMM8       = 0x6A // PUSH imm8
	X86_OP_IMUL_R_RM_IMM8  = 0x6B // IMUL r, r/m, imm8
	X86_OP_JCC_REL8        = 0x70 // Jcc rel8 (+ cc)
	X86_OP_GROUP1_RM8_IMM8 = 0x80 // Group 1 r/m8, imm8
	X86_OP_GROUP1_RM_IMM32 = 0x81 // Group 1 r/m32, imm32
	X86_OP_GROUP1_RM_IMM8  = 0x83 // Group 1 r/m32, imm8 (sign-extended)
	X86_OP_TEST_RM_R       = 0x85 // TEST r/m, r
	X86_OP_XCHG_RM8_R8     = 0x86 // XCHG r/m8, r8
	X86_OP_XCHG_RM_R       = 0x87 // XCHG r/m, r
	X86_OP_MOV_RM8_R8      = 0x88 // MOV r/m8, r8
	X86_OP_MOV_RM_R        = 0x89 // MOV r/m, r
	X86_OP_MOV_R8_RM8      = 0x8A // MOV r8, r/m8
	X86_OP_MOV_R_RM        = 0x8B // MOV r, r/m
	X86_OP_LEA             = 0x8D // LEA r, m
	X86_OP_POP_RM          = 0x8F // POP r/m
	X86_OP_NOP             = 0x90 // NOP
	X86_OP_CDQ             = 0x99 // CDQ
	X86_OP_WAIT            = 0x9B // WAIT/FWAIT
	X86_OP_PUSHFD          = 0x9C // PUSHFD
	X86_OP_POPFD           = 0x9D // POPFD
	X86_OP_SAHF            = 0x9E // SAHF
	X86_OP_MOVSB           = 0xA4 // MOVSB
	X86_OP_MOVSD           = 0xA5 // MOVSD
	X86_OP_TEST_EAX_IMM    = 0xA9 // TEST eAX, imm32
	X86_OP_STOSB           = 0xAA // STOSB
	X86_OP_STOSD           = 0xAB // STOSD
	X86_OP_MOV_R_IMM       = 0xB8 // MOV r32, imm32 (+ reg)
	X86_OP_GROUP2_RM_IMM8  = 0xC1 // Group 2 shift r/m, imm8
	X86_OP_RET_IMM16       = 0xC2 // RET imm16
	X86_OP_RET             = 0xC3 // RET
	X86_OP_MOV_RM8_IMM8    = 0xC6 // MOV r/m8, imm8
	X86_OP_MOV_RM_IMM      = 0xC7 // MOV r/m, imm32
	X86_OP_ENTER           = 0xC8 // ENTER imm16, imm8
	X86_OP_LEAVE           = 0xC9 // LEAVE
	X86_OP_INT3            = 0xCC // INT3
	X86_OP_GROUP2_RM_1     = 0xD1 // Group 2 shift r/m, 1
	X86_OP_GROUP2_RM_CL    = 0xD3 // Group 2 shift r/m, CL
	X86_OP_LOOPNE          = 0xE0 // LOOPNE rel8
	X86_OP_LOOPE           = 0xE1 // LOOPE rel8
	X86_OP_LOOP            = 0xE2 // LOOP rel8
	X86_OP_CALL_REL32      = 0xE8 // CALL rel32
	X86_OP_JMP_REL32       = 0xE9 // JMP rel32
	X86_OP_JMP_REL8        = 0xEB // JMP rel8
	X86_OP_GROUP3_RM8      = 0xF6 // Group 3 r/m8 (TEST imm8)
	X86_OP_GROUP3_RM       = 0xF7 // Group 3 r/m (TEST, NOT, NEG, MUL, IMUL, DIV, IDIV)
	X86_OP_CLD             = 0xFC // CLD
	X86_OP_GROUP5_RM       = 0xFF // Group 5 (INC, DEC, CALL, JMP, PUSH)
)

// Two-byte opcodes (0x0F prefix)
const (
	X86_OP2_RDTSC     = 0x31 // RDTSC
	X86_OP2_CMOVCC    = 0x40 // CMOVcc r, r/m (+ cc)
	X86_OP2_JCC_REL32 = 0x80 // Jcc rel32 (+ cc)
	X86_OP2_SETCC     = 0x90 // SETcc r/m8 (+ cc)
	X86_OP2_SHLD_IMM8 = 0xA4 // SHLD r/m, r, imm8
	X86_OP2_SHLD_CL   = 0xA5 // SHLD r/m, r, CL
	X86_OP2_SHRD_IMM8 = 0xAC // SHRD r/m, r, imm8
	X86_OP2_SHRD_CL   = 0xAD // SHRD r/m, r, CL
	X86_OP2_IMUL_R_RM = 0xAF // IMUL r, r/m
	X86_OP2_CMPXCHG   = 0xB1 // CMPXCHG r/m, r
	X86_OP2_MOVZX_RM8 = 0xB6 // MOVZX r, r/m8; +1 for r/m16, +8 for MOVSX
)

// Offsets of the derived condition opcodes from the short Jcc opcode.
const (
	X86_CC_NEAR_DELTA  = 0x10 // 0x0F, Jcc rel32
	X86_CC_SETCC_DELTA = 0x20 // 0x0F, SETcc
	X86_CC_CMOV_DELTA  = 0x30 // 0x0F, CMOVcc (subtracted)
)

// ModRM reg field for Group 3 (0xF6/0xF7)
const (
	X86_REG_TEST = 0
	X86_REG_NOT  = 2
	X86_REG_NEG  = 3
	X86_REG_MUL  = 4
	X86_REG_IMUL = 5
	X86_REG_DIV  = 6
	X86_REG_IDIV = 7
)

// ModRM reg field for Group 5 (0xFF)
const (
	X86_REG_INC_RM  = 0
	X86_REG_DEC_RM  = 1
	X86_REG_CALL_RM = 2
	X86_REG_JMP_RM  = 4
	X86_REG_PUSH_RM = 6
)

// Lengths of the branch forms
const (
	X86_SHORT_JMP_LEN  = 2 // EB rel8 / 7x rel8
	X86_NEAR_JMP_LEN   = 5 // E9 rel32 / E8 rel32
	X86_NEAR_JCC_LEN   = 6 // 0F 8x rel32
	X86_NEAR_JMP_EXTRA = 3 // X86_NEAR_JMP_LEN - X86_SHORT_JMP_LEN
	X86_NEAR_JCC_EXTRA = 4 // X86_NEAR_JCC_LEN - X86_SHORT_JMP_LEN
)
