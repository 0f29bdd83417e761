package cpu

// opcodeInfo describes one of the 256 possible opcode bytes. exec is nil
// for the 105 bytes that aren't part of the documented 151-opcode/56-
// mnemonic instruction set; Step treats those as illegal.
type opcodeInfo struct {
	name      string
	mode      Mode
	bytes     byte
	cycles    byte
	pageBonus bool // extra cycle on page-crossing effective address
	exec      execFunc
}

// OpcodeName returns the mnemonic for opcode, or "???" if it isn't part
// of the documented instruction set. Used by the debugger to label
// disassembly without exposing the dispatch table itself.
func OpcodeName(opcode byte) string {
	info := opcodeTable[opcode]
	if info.exec == nil {
		return "???"
	}
	return info.name
}

// opcodeTable is a dense, array-indexed dispatch table rather than a map:
// opcode lookup and decode sit on the hottest path in the emulator, and a
// direct array index avoids a hash lookup per instruction.
var opcodeTable = [256]opcodeInfo{
	0x00: {"BRK", Implied, 1, 7, false, brk},
	0x01: {"ORA", IndirectX, 2, 6, false, ora},
	0x05: {"ORA", ZeroPage, 2, 3, false, ora},
	0x06: {"ASL", ZeroPage, 2, 5, false, asl},
	0x08: {"PHP", Implied, 1, 3, false, php},
	0x09: {"ORA", Immediate, 2, 2, false, ora},
	0x0A: {"ASL", Accumulator, 1, 2, false, asl},
	0x0D: {"ORA", Absolute, 3, 4, false, ora},
	0x0E: {"ASL", Absolute, 3, 6, false, asl},

	0x10: {"BPL", Relative, 2, 2, false, bpl},
	0x11: {"ORA", IndirectY, 2, 5, true, ora},
	0x15: {"ORA", ZeroPageX, 2, 4, false, ora},
	0x16: {"ASL", ZeroPageX, 2, 6, false, asl},
	0x18: {"CLC", Implied, 1, 2, false, clc},
	0x19: {"ORA", AbsoluteY, 3, 4, true, ora},
	0x1D: {"ORA", AbsoluteX, 3, 4, true, ora},
	0x1E: {"ASL", AbsoluteX, 3, 7, false, asl},

	0x20: {"JSR", Absolute, 3, 6, false, jsr},
	0x21: {"AND", IndirectX, 2, 6, false, and},
	0x24: {"BIT", ZeroPage, 2, 3, false, bit},
	0x25: {"AND", ZeroPage, 2, 3, false, and},
	0x26: {"ROL", ZeroPage, 2, 5, false, rol},
	0x28: {"PLP", Implied, 1, 4, false, plp},
	0x29: {"AND", Immediate, 2, 2, false, and},
	0x2A: {"ROL", Accumulator, 1, 2, false, rol},
	0x2C: {"BIT", Absolute, 3, 4, false, bit},
	0x2D: {"AND", Absolute, 3, 4, false, and},
	0x2E: {"ROL", Absolute, 3, 6, false, rol},

	0x30: {"BMI", Relative, 2, 2, false, bmi},
	0x31: {"AND", IndirectY, 2, 5, true, and},
	0x35: {"AND", ZeroPageX, 2, 4, false, and},
	0x36: {"ROL", ZeroPageX, 2, 6, false, rol},
	0x38: {"SEC", Implied, 1, 2, false, sec},
	0x39: {"AND", AbsoluteY, 3, 4, true, and},
	0x3D: {"AND", AbsoluteX, 3, 4, true, and},
	0x3E: {"ROL", AbsoluteX, 3, 7, false, rol},

	0x40: {"RTI", Implied, 1, 6, false, rti},
	0x41: {"EOR", IndirectX, 2, 6, false, eor},
	0x45: {"EOR", ZeroPage, 2, 3, false, eor},
	0x46: {"LSR", ZeroPage, 2, 5, false, lsr},
	0x48: {"PHA", Implied, 1, 3, false, pha},
	0x49: {"EOR", Immediate, 2, 2, false, eor},
	0x4A: {"LSR", Accumulator, 1, 2, false, lsr},
	0x4C: {"JMP", Absolute, 3, 3, false, jmp},
	0x4D: {"EOR", Absolute, 3, 4, false, eor},
	0x4E: {"LSR", Absolute, 3, 6, false, lsr},

	0x50: {"BVC", Relative, 2, 2, false, bvc},
	0x51: {"EOR", IndirectY, 2, 5, true, eor},
	0x55: {"EOR", ZeroPageX, 2, 4, false, eor},
	0x56: {"LSR", ZeroPageX, 2, 6, false, lsr},
	0x58: {"CLI", Implied, 1, 2, false, cli},
	0x59: {"EOR", AbsoluteY, 3, 4, true, eor},
	0x5D: {"EOR", AbsoluteX, 3, 4, true, eor},
	0x5E: {"LSR", AbsoluteX, 3, 7, false, lsr},

	0x60: {"RTS", Implied, 1, 6, false, rts},
	0x61: {"ADC", IndirectX, 2, 6, false, adc},
	0x65: {"ADC", ZeroPage, 2, 3, false, adc},
	0x66: {"ROR", ZeroPage, 2, 5, false, ror},
	0x68: {"PLA", Implied, 1, 4, false, pla},
	0x69: {"ADC", Immediate, 2, 2, false, adc},
	0x6A: {"ROR", Accumulator, 1, 2, false, ror},
	0x6C: {"JMP", Indirect, 3, 5, false, jmp},
	0x6D: {"ADC", Absolute, 3, 4, false, adc},
	0x6E: {"ROR", Absolute, 3, 6, false, ror},

	0x70: {"BVS", Relative, 2, 2, false, bvs},
	0x71: {"ADC", IndirectY, 2, 5, true, adc},
	0x75: {"ADC", ZeroPageX, 2, 4, false, adc},
	0x76: {"ROR", ZeroPageX, 2, 6, false, ror},
	0x78: {"SEI", Implied, 1, 2, false, sei},
	0x79: {"ADC", AbsoluteY, 3, 4, true, adc},
	0x7D: {"ADC", AbsoluteX, 3, 4, true, adc},
	0x7E: {"ROR", AbsoluteX, 3, 7, false, ror},

	0x81: {"STA", IndirectX, 2, 6, false, sta},
	0x84: {"STY", ZeroPage, 2, 3, false, sty},
	0x85: {"STA", ZeroPage, 2, 3, false, sta},
	0x86: {"STX", ZeroPage, 2, 3, false, stx},
	0x88: {"DEY", Implied, 1, 2, false, dey},
	0x8A: {"TXA", Implied, 1, 2, false, txa},
	0x8C: {"STY", Absolute, 3, 4, false, sty},
	0x8D: {"STA", Absolute, 3, 4, false, sta},
	0x8E: {"STX", Absolute, 3, 4, false, stx},

	0x90: {"BCC", Relative, 2, 2, false, bcc},
	0x91: {"STA", IndirectY, 2, 6, false, sta},
	0x94: {"STY", ZeroPageX, 2, 4, false, sty},
	0x95: {"STA", ZeroPageX, 2, 4, false, sta},
	0x96: {"STX", ZeroPageY, 2, 4, false, stx},
	0x98: {"TYA", Implied, 1, 2, false, tya},
	0x99: {"STA", AbsoluteY, 3, 5, false, sta},
	0x9A: {"TXS", Implied, 1, 2, false, txs},
	0x9D: {"STA", AbsoluteX, 3, 5, false, sta},

	0xA0: {"LDY", Immediate, 2, 2, false, ldy},
	0xA1: {"LDA", IndirectX, 2, 6, false, lda},
	0xA2: {"LDX", Immediate, 2, 2, false, ldx},
	0xA4: {"LDY", ZeroPage, 2, 3, false, ldy},
	0xA5: {"LDA", ZeroPage, 2, 3, false, lda},
	0xA6: {"LDX", ZeroPage, 2, 3, false, ldx},
	0xA8: {"TAY", Implied, 1, 2, false, tay},
	0xA9: {"LDA", Immediate, 2, 2, false, lda},
	0xAA: {"TAX", Implied, 1, 2, false, tax},
	0xAC: {"LDY", Absolute, 3, 4, false, ldy},
	0xAD: {"LDA", Absolute, 3, 4, false, lda},
	0xAE: {"LDX", Absolute, 3, 4, false, ldx},

	0xB0: {"BCS", Relative, 2, 2, false, bcs},
	0xB1: {"LDA", IndirectY, 2, 5, true, lda},
	0xB4: {"LDY", ZeroPageX, 2, 4, false, ldy},
	0xB5: {"LDA", ZeroPageX, 2, 4, false, lda},
	0xB6: {"LDX", ZeroPageY, 2, 4, false, ldx},
	0xB8: {"CLV", Implied, 1, 2, false, clv},
	0xB9: {"LDA", AbsoluteY, 3, 4, true, lda},
	0xBA: {"TSX", Implied, 1, 2, false, tsx},
	0xBC: {"LDY", AbsoluteX, 3, 4, true, ldy},
	0xBD: {"LDA", AbsoluteX, 3, 4, true, lda},
	0xBE: {"LDX", AbsoluteY, 3, 4, true, ldx},

	0xC0: {"CPY", Immediate, 2, 2, false, cpy},
	0xC1: {"CMP", IndirectX, 2, 6, false, cmp},
	0xC4: {"CPY", ZeroPage, 2, 3, false, cpy},
	0xC5: {"CMP", ZeroPage, 2, 3, false, cmp},
	0xC6: {"DEC", ZeroPage, 2, 5, false, dec},
	0xC8: {"INY", Implied, 1, 2, false, iny},
	0xC9: {"CMP", Immediate, 2, 2, false, cmp},
	0xCA: {"DEX", Implied, 1, 2, false, dex},
	0xCC: {"CPY", Absolute, 3, 4, false, cpy},
	0xCD: {"CMP", Absolute, 3, 4, false, cmp},
	0xCE: {"DEC", Absolute, 3, 6, false, dec},

	0xD0: {"BNE", Relative, 2, 2, false, bne},
	0xD1: {"CMP", IndirectY, 2, 5, true, cmp},
	0xD5: {"CMP", ZeroPageX, 2, 4, false, cmp},
	0xD6: {"DEC", ZeroPageX, 2, 6, false, dec},
	0xD8: {"CLD", Implied, 1, 2, false, cld},
	0xD9: {"CMP", AbsoluteY, 3, 4, true, cmp},
	0xDD: {"CMP", AbsoluteX, 3, 4, true, cmp},
	0xDE: {"DEC", AbsoluteX, 3, 7, false, dec},

	0xE0: {"CPX", Immediate, 2, 2, false, cpx},
	0xE1: {"SBC", IndirectX, 2, 6, false, sbc},
	0xE4: {"CPX", ZeroPage, 2, 3, false, cpx},
	0xE5: {"SBC", ZeroPage, 2, 3, false, sbc},
	0xE6: {"INC", ZeroPage, 2, 5, false, inc},
	0xE8: {"INX", Implied, 1, 2, false, inx},
	0xE9: {"SBC", Immediate, 2, 2, false, sbc},
	0xEA: {"NOP", Implied, 1, 2, false, nop},
	0xEC: {"CPX", Absolute, 3, 4, false, cpx},
	0xED: {"SBC", Absolute, 3, 4, false, sbc},
	0xEE: {"INC", Absolute, 3, 6, false, inc},

	0xF0: {"BEQ", Relative, 2, 2, false, beq},
	0xF1: {"SBC", IndirectY, 2, 5, true, sbc},
	0xF5: {"SBC", ZeroPageX, 2, 4, false, sbc},
	0xF6: {"INC", ZeroPageX, 2, 6, false, inc},
	0xF8: {"SED", Implied, 1, 2, false, sed},
	0xF9: {"SBC", AbsoluteY, 3, 4, true, sbc},
	0xFD: {"SBC", AbsoluteX, 3, 4, true, sbc},
	0xFE: {"INC", AbsoluteX, 3, 7, false, inc},
}
