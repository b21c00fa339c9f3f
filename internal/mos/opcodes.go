package mos

// Instruction identifies one of the 56 legal operations. The zero value is
// OpILL, the illegal-operation sentinel.
type Instruction uint8

const (
	OpILL Instruction = iota
	OpADC
	OpAND
	OpASL
	OpBCC
	OpBCS
	OpBEQ
	OpBIT
	OpBMI
	OpBNE
	OpBPL
	OpBRK
	OpBVC
	OpBVS
	OpCLC
	OpCLD
	OpCLI
	OpCLV
	OpCMP
	OpCPX
	OpCPY
	OpDEC
	OpDEX
	OpDEY
	OpEOR
	OpINC
	OpINX
	OpINY
	OpJMP
	OpJSR
	OpLDA
	OpLDX
	OpLDY
	OpLSR
	OpNOP
	OpORA
	OpPHA
	OpPHP
	OpPLA
	OpPLP
	OpROL
	OpROR
	OpRTI
	OpRTS
	OpSBC
	OpSEC
	OpSED
	OpSEI
	OpSTA
	OpSTX
	OpSTY
	OpTAX
	OpTAY
	OpTSX
	OpTXA
	OpTXS
	OpTYA
)

var opNames = [...]string{
	OpILL: "ILL",
	OpADC: "ADC",
	OpAND: "AND",
	OpASL: "ASL",
	OpBCC: "BCC",
	OpBCS: "BCS",
	OpBEQ: "BEQ",
	OpBIT: "BIT",
	OpBMI: "BMI",
	OpBNE: "BNE",
	OpBPL: "BPL",
	OpBRK: "BRK",
	OpBVC: "BVC",
	OpBVS: "BVS",
	OpCLC: "CLC",
	OpCLD: "CLD",
	OpCLI: "CLI",
	OpCLV: "CLV",
	OpCMP: "CMP",
	OpCPX: "CPX",
	OpCPY: "CPY",
	OpDEC: "DEC",
	OpDEX: "DEX",
	OpDEY: "DEY",
	OpEOR: "EOR",
	OpINC: "INC",
	OpINX: "INX",
	OpINY: "INY",
	OpJMP: "JMP",
	OpJSR: "JSR",
	OpLDA: "LDA",
	OpLDX: "LDX",
	OpLDY: "LDY",
	OpLSR: "LSR",
	OpNOP: "NOP",
	OpORA: "ORA",
	OpPHA: "PHA",
	OpPHP: "PHP",
	OpPLA: "PLA",
	OpPLP: "PLP",
	OpROL: "ROL",
	OpROR: "ROR",
	OpRTI: "RTI",
	OpRTS: "RTS",
	OpSBC: "SBC",
	OpSEC: "SEC",
	OpSED: "SED",
	OpSEI: "SEI",
	OpSTA: "STA",
	OpSTX: "STX",
	OpSTY: "STY",
	OpTAX: "TAX",
	OpTAY: "TAY",
	OpTSX: "TSX",
	OpTXA: "TXA",
	OpTXS: "TXS",
	OpTYA: "TYA",
}

func (op Instruction) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "???"
}

// InstructionFromMnemonic maps a 3-letter mnemonic to its Instruction.
// Unknown mnemonics (including "ILL" itself) map to OpILL.
func InstructionFromMnemonic(s string) Instruction {
	if len(s) != 3 {
		return OpILL
	}
	for op := OpADC; op <= OpTYA; op++ {
		if opNames[op] == s {
			return op
		}
	}
	return OpILL
}

// AddrMode identifies one of the 13 addressing modes. The zero value is
// ModeILL.
type AddrMode uint8

const (
	ModeILL AddrMode = iota
	ModeABS          // Absolute
	ModeABX          // Absolute, offset by X
	ModeABY          // Absolute, offset by Y
	ModeACC          // Accumulator
	ModeIMM          // Immediate
	ModeIMP          // Implied
	ModeIND          // Indirect
	ModeINX          // Indexed indirect using X
	ModeINY          // Indirect indexed using Y
	ModeREL          // Relative
	ModeZPG          // Zero page
	ModeZPX          // Zero page, offset by X
	ModeZPY          // Zero page, offset by Y
)

var modeNames = [...]string{
	ModeILL: "ILL",
	ModeABS: "ABS",
	ModeABX: "ABX",
	ModeABY: "ABY",
	ModeACC: "ACC",
	ModeIMM: "IMM",
	ModeIMP: "IMP",
	ModeIND: "IND",
	ModeINX: "INX",
	ModeINY: "INY",
	ModeREL: "REL",
	ModeZPG: "ZPG",
	ModeZPX: "ZPX",
	ModeZPY: "ZPY",
}

func (mode AddrMode) String() string {
	if int(mode) < len(modeNames) {
		return modeNames[mode]
	}
	return "???"
}

// Detail is one row of the opcode table: the opcode byte, its operation and
// addressing mode, the instruction width in bytes, the base cycle count and
// whether a page crossing adds a cycle.
type Detail struct {
	Opcode    uint8
	Op        Instruction
	Mode      AddrMode
	Bytes     uint8
	Cycles    uint8
	PageCross bool
}

// details maps every opcode byte to its row. Only the 151 legal opcodes are
// listed; init fills the rest with ILL rows (1 byte, 2 cycles).
var details = [0x100]Detail{
	0x00: {0x00, OpBRK, ModeIMP, 1, 7, false},
	0x01: {0x01, OpORA, ModeINX, 2, 6, false},
	0x05: {0x05, OpORA, ModeZPG, 2, 3, false},
	0x06: {0x06, OpASL, ModeZPG, 2, 5, false},
	0x08: {0x08, OpPHP, ModeIMP, 1, 3, false},
	0x09: {0x09, OpORA, ModeIMM, 2, 2, false},
	0x0a: {0x0a, OpASL, ModeACC, 1, 2, false},
	0x0d: {0x0d, OpORA, ModeABS, 3, 4, false},
	0x0e: {0x0e, OpASL, ModeABS, 3, 6, false},
	0x10: {0x10, OpBPL, ModeREL, 2, 2, true},
	0x11: {0x11, OpORA, ModeINY, 2, 5, true},
	0x15: {0x15, OpORA, ModeZPX, 2, 4, false},
	0x16: {0x16, OpASL, ModeZPX, 2, 6, false},
	0x18: {0x18, OpCLC, ModeIMP, 1, 2, false},
	0x19: {0x19, OpORA, ModeABY, 3, 4, true},
	0x1d: {0x1d, OpORA, ModeABX, 3, 4, true},
	0x1e: {0x1e, OpASL, ModeABX, 3, 7, false},
	0x20: {0x20, OpJSR, ModeABS, 3, 6, false},
	0x21: {0x21, OpAND, ModeINX, 2, 6, false},
	0x24: {0x24, OpBIT, ModeZPG, 2, 3, false},
	0x25: {0x25, OpAND, ModeZPG, 2, 3, false},
	0x26: {0x26, OpROL, ModeZPG, 2, 5, false},
	0x28: {0x28, OpPLP, ModeIMP, 1, 4, false},
	0x29: {0x29, OpAND, ModeIMM, 2, 2, false},
	0x2a: {0x2a, OpROL, ModeACC, 1, 2, false},
	0x2c: {0x2c, OpBIT, ModeABS, 3, 4, false},
	0x2d: {0x2d, OpAND, ModeABS, 3, 4, false},
	0x2e: {0x2e, OpROL, ModeABS, 3, 6, false},
	0x30: {0x30, OpBMI, ModeREL, 2, 2, true},
	0x31: {0x31, OpAND, ModeINY, 2, 5, true},
	0x35: {0x35, OpAND, ModeZPX, 2, 4, false},
	0x36: {0x36, OpROL, ModeZPX, 2, 6, false},
	0x38: {0x38, OpSEC, ModeIMP, 1, 2, false},
	0x39: {0x39, OpAND, ModeABY, 3, 4, true},
	0x3d: {0x3d, OpAND, ModeABX, 3, 4, true},
	0x3e: {0x3e, OpROL, ModeABX, 3, 7, false},
	0x40: {0x40, OpRTI, ModeIMP, 1, 6, false},
	0x41: {0x41, OpEOR, ModeINX, 2, 6, false},
	0x45: {0x45, OpEOR, ModeZPG, 2, 3, false},
	0x46: {0x46, OpLSR, ModeZPG, 2, 5, false},
	0x48: {0x48, OpPHA, ModeIMP, 1, 3, false},
	0x49: {0x49, OpEOR, ModeIMM, 2, 2, false},
	0x4a: {0x4a, OpLSR, ModeACC, 1, 2, false},
	0x4c: {0x4c, OpJMP, ModeABS, 3, 3, false},
	0x4d: {0x4d, OpEOR, ModeABS, 3, 4, false},
	0x4e: {0x4e, OpLSR, ModeABS, 3, 6, false},
	0x50: {0x50, OpBVC, ModeREL, 2, 2, true},
	0x51: {0x51, OpEOR, ModeINY, 2, 5, true},
	0x55: {0x55, OpEOR, ModeZPX, 2, 4, false},
	0x56: {0x56, OpLSR, ModeZPX, 2, 6, false},
	0x58: {0x58, OpCLI, ModeIMP, 1, 2, false},
	0x59: {0x59, OpEOR, ModeABY, 3, 4, true},
	0x5d: {0x5d, OpEOR, ModeABX, 3, 4, true},
	0x5e: {0x5e, OpLSR, ModeABX, 3, 7, false},
	0x60: {0x60, OpRTS, ModeIMP, 1, 6, false},
	0x61: {0x61, OpADC, ModeINX, 2, 6, false},
	0x65: {0x65, OpADC, ModeZPG, 2, 3, false},
	0x66: {0x66, OpROR, ModeZPG, 2, 5, false},
	0x68: {0x68, OpPLA, ModeIMP, 1, 4, false},
	0x69: {0x69, OpADC, ModeIMM, 2, 2, false},
	0x6a: {0x6a, OpROR, ModeACC, 1, 2, false},
	0x6c: {0x6c, OpJMP, ModeIND, 3, 5, false},
	0x6d: {0x6d, OpADC, ModeABS, 3, 4, false},
	0x6e: {0x6e, OpROR, ModeABS, 3, 6, false},
	0x70: {0x70, OpBVS, ModeREL, 2, 2, true},
	0x71: {0x71, OpADC, ModeINY, 2, 5, true},
	0x75: {0x75, OpADC, ModeZPX, 2, 4, false},
	0x76: {0x76, OpROR, ModeZPX, 2, 6, false},
	0x78: {0x78, OpSEI, ModeIMP, 1, 2, false},
	0x79: {0x79, OpADC, ModeABY, 3, 4, true},
	0x7d: {0x7d, OpADC, ModeABX, 3, 4, true},
	0x7e: {0x7e, OpROR, ModeABX, 3, 7, false},
	0x81: {0x81, OpSTA, ModeINX, 2, 6, false},
	0x84: {0x84, OpSTY, ModeZPG, 2, 3, false},
	0x85: {0x85, OpSTA, ModeZPG, 2, 3, false},
	0x86: {0x86, OpSTX, ModeZPG, 2, 3, false},
	0x88: {0x88, OpDEY, ModeIMP, 1, 2, false},
	0x8a: {0x8a, OpTXA, ModeIMP, 1, 2, false},
	0x8c: {0x8c, OpSTY, ModeABS, 3, 4, false},
	0x8d: {0x8d, OpSTA, ModeABS, 3, 4, false},
	0x8e: {0x8e, OpSTX, ModeABS, 3, 4, false},
	0x90: {0x90, OpBCC, ModeREL, 2, 2, true},
	0x91: {0x91, OpSTA, ModeINY, 2, 6, false},
	0x94: {0x94, OpSTY, ModeZPX, 2, 4, false},
	0x95: {0x95, OpSTA, ModeZPX, 2, 4, false},
	0x96: {0x96, OpSTX, ModeZPY, 2, 4, false},
	0x98: {0x98, OpTYA, ModeIMP, 1, 2, false},
	0x99: {0x99, OpSTA, ModeABY, 3, 5, false},
	0x9a: {0x9a, OpTXS, ModeIMP, 1, 2, false},
	0x9d: {0x9d, OpSTA, ModeABX, 3, 5, false},
	0xa0: {0xa0, OpLDY, ModeIMM, 2, 2, false},
	0xa1: {0xa1, OpLDA, ModeINX, 2, 6, false},
	0xa2: {0xa2, OpLDX, ModeIMM, 2, 2, false},
	0xa4: {0xa4, OpLDY, ModeZPG, 2, 3, false},
	0xa5: {0xa5, OpLDA, ModeZPG, 2, 3, false},
	0xa6: {0xa6, OpLDX, ModeZPG, 2, 3, false},
	0xa8: {0xa8, OpTAY, ModeIMP, 1, 2, false},
	0xa9: {0xa9, OpLDA, ModeIMM, 2, 2, false},
	0xaa: {0xaa, OpTAX, ModeIMP, 1, 2, false},
	0xac: {0xac, OpLDY, ModeABS, 3, 4, false},
	0xad: {0xad, OpLDA, ModeABS, 3, 4, false},
	0xae: {0xae, OpLDX, ModeABS, 3, 4, false},
	0xb0: {0xb0, OpBCS, ModeREL, 2, 2, true},
	0xb1: {0xb1, OpLDA, ModeINY, 2, 5, true},
	0xb4: {0xb4, OpLDY, ModeZPX, 2, 4, false},
	0xb5: {0xb5, OpLDA, ModeZPX, 2, 4, false},
	0xb6: {0xb6, OpLDX, ModeZPY, 2, 4, false},
	0xb8: {0xb8, OpCLV, ModeIMP, 1, 2, false},
	0xb9: {0xb9, OpLDA, ModeABY, 3, 4, true},
	0xba: {0xba, OpTSX, ModeIMP, 1, 2, false},
	0xbc: {0xbc, OpLDY, ModeABX, 3, 4, true},
	0xbd: {0xbd, OpLDA, ModeABX, 3, 4, true},
	0xbe: {0xbe, OpLDX, ModeABY, 3, 4, true},
	0xc0: {0xc0, OpCPY, ModeIMM, 2, 2, false},
	0xc1: {0xc1, OpCMP, ModeINX, 2, 6, false},
	0xc4: {0xc4, OpCPY, ModeZPG, 2, 3, false},
	0xc5: {0xc5, OpCMP, ModeZPG, 2, 3, false},
	0xc6: {0xc6, OpDEC, ModeZPG, 2, 5, false},
	0xc8: {0xc8, OpINY, ModeIMP, 1, 2, false},
	0xc9: {0xc9, OpCMP, ModeIMM, 2, 2, false},
	0xca: {0xca, OpDEX, ModeIMP, 1, 2, false},
	0xcc: {0xcc, OpCPY, ModeABS, 3, 4, false},
	0xcd: {0xcd, OpCMP, ModeABS, 3, 4, false},
	0xce: {0xce, OpDEC, ModeABS, 3, 6, false},
	0xd0: {0xd0, OpBNE, ModeREL, 2, 2, true},
	0xd1: {0xd1, OpCMP, ModeINY, 2, 5, true},
	0xd5: {0xd5, OpCMP, ModeZPX, 2, 4, false},
	0xd6: {0xd6, OpDEC, ModeZPX, 2, 6, false},
	0xd8: {0xd8, OpCLD, ModeIMP, 1, 2, false},
	0xd9: {0xd9, OpCMP, ModeABY, 3, 4, true},
	0xdd: {0xdd, OpCMP, ModeABX, 3, 4, true},
	0xde: {0xde, OpDEC, ModeABX, 3, 7, false},
	0xe0: {0xe0, OpCPX, ModeIMM, 2, 2, false},
	0xe1: {0xe1, OpSBC, ModeINX, 2, 6, false},
	0xe4: {0xe4, OpCPX, ModeZPG, 2, 3, false},
	0xe5: {0xe5, OpSBC, ModeZPG, 2, 3, false},
	0xe6: {0xe6, OpINC, ModeZPG, 2, 5, false},
	0xe8: {0xe8, OpINX, ModeIMP, 1, 2, false},
	0xe9: {0xe9, OpSBC, ModeIMM, 2, 2, false},
	0xea: {0xea, OpNOP, ModeIMP, 1, 2, false},
	0xec: {0xec, OpCPX, ModeABS, 3, 4, false},
	0xed: {0xed, OpSBC, ModeABS, 3, 4, false},
	0xee: {0xee, OpINC, ModeABS, 3, 6, false},
	0xf0: {0xf0, OpBEQ, ModeREL, 2, 2, true},
	0xf1: {0xf1, OpSBC, ModeINY, 2, 5, true},
	0xf5: {0xf5, OpSBC, ModeZPX, 2, 4, false},
	0xf6: {0xf6, OpINC, ModeZPX, 2, 6, false},
	0xf8: {0xf8, OpSED, ModeIMP, 1, 2, false},
	0xf9: {0xf9, OpSBC, ModeABY, 3, 4, true},
	0xfd: {0xfd, OpSBC, ModeABX, 3, 4, true},
	0xfe: {0xfe, OpINC, ModeABX, 3, 7, false},
}

func init() {
	for i := range details {
		if details[i].Op == OpILL {
			details[i] = Detail{Opcode: uint8(i), Bytes: 1, Cycles: 2}
		}
	}
}

// Lookup returns the table row for an opcode byte.
func Lookup(opcode uint8) Detail {
	return details[opcode]
}

// illSentinel is the opcode of the first illegal table row, returned by Find
// when no row matches.
const illSentinel = 0x02

// Find returns the first row matching the operation and addressing mode, or
// the ILL row at opcode 0x02 when there is none.
func Find(op Instruction, mode AddrMode) Detail {
	for _, d := range details {
		if d.Op == op && d.Mode == mode {
			return d
		}
	}
	return details[illSentinel]
}
