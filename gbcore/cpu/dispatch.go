package cpu

// opFunc executes one base-table opcode. It never returns a cycle count:
// every opFunc reaches its documented timing purely through the Read/Write/
// Tick calls it makes against the bus, so the dispatch table itself carries
// no timing information at all.
type opFunc func(c *CPU)

// baseTable is built once at package init from three sources: the
// individually-named op* functions in opcodes.go, the bit-field-decoded
// LD r,r'/HALT block (0x40-0x7F), and the bit-field-decoded ALU-on-A block
// (0x80-0xBF).
var baseTable [256]opFunc

func init() {
	for i := range baseTable {
		baseTable[i] = illegalOp
	}

	named := map[uint8]opFunc{
		0x00: op00, 0x01: op01, 0x02: op02, 0x03: op03, 0x04: op04, 0x05: op05,
		0x06: op06, 0x07: op07, 0x08: op08, 0x09: op09, 0x0A: op0A, 0x0B: op0B,
		0x0C: op0C, 0x0D: op0D, 0x0E: op0E, 0x0F: op0F,

		0x10: op10, 0x11: op11, 0x12: op12, 0x13: op13, 0x14: op14, 0x15: op15,
		0x16: op16, 0x17: op17, 0x18: op18, 0x19: op19, 0x1A: op1A, 0x1B: op1B,
		0x1C: op1C, 0x1D: op1D, 0x1E: op1E, 0x1F: op1F,

		0x20: op20, 0x21: op21, 0x22: op22, 0x23: op23, 0x24: op24, 0x25: op25,
		0x26: op26, 0x27: op27, 0x28: op28, 0x29: op29, 0x2A: op2A, 0x2B: op2B,
		0x2C: op2C, 0x2D: op2D, 0x2E: op2E, 0x2F: op2F,

		0x30: op30, 0x31: op31, 0x32: op32, 0x33: op33, 0x34: op34, 0x35: op35,
		0x36: op36, 0x37: op37, 0x38: op38, 0x39: op39, 0x3A: op3A, 0x3B: op3B,
		0x3C: op3C, 0x3D: op3D, 0x3E: op3E, 0x3F: op3F,

		0x76: op76, // HALT, overrides the LD (HL),(HL) slot in the generated block below

		0xC0: opC0, 0xC1: opC1, 0xC2: opC2, 0xC3: opC3, 0xC4: opC4, 0xC5: opC5,
		0xC6: opC6, 0xC7: rst(0x00), 0xC8: opC8, 0xC9: opC9, 0xCA: opCA,
		0xCC: opCC, 0xCD: opCD, 0xCE: opCE, 0xCF: rst(0x08),

		0xD0: opD0, 0xD1: opD1, 0xD2: opD2, 0xD4: opD4, 0xD5: opD5,
		0xD6: opD6, 0xD7: rst(0x10), 0xD8: opD8, 0xD9: opD9, 0xDA: opDA,
		0xDC: opDC, 0xDE: opDE, 0xDF: rst(0x18),

		0xE0: opE0, 0xE1: opE1, 0xE2: opE2, 0xE5: opE5, 0xE6: opE6,
		0xE7: rst(0x20), 0xE8: opE8, 0xE9: opE9, 0xEA: opEA, 0xEE: opEE,
		0xEF: rst(0x28),

		0xF0: opF0, 0xF1: opF1, 0xF2: opF2, 0xF3: opF3, 0xF5: opF5, 0xF6: opF6,
		0xF7: rst(0x30), 0xF8: opF8, 0xF9: opF9, 0xFA: opFA, 0xFB: opFB,
		0xFE: opFE, 0xFF: rst(0x38),
	}
	for opcode, fn := range named {
		baseTable[opcode] = fn
	}

	// LD r,r' block: dest in bits 5:3, src in bits 2:0. 0x76 (dest=6,src=6,
	// which would otherwise be LD (HL),(HL)) is HALT instead, already set
	// above.
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		dest := uint8(opcode>>3) & 0x7
		src := uint8(opcode) & 0x7
		baseTable[opcode] = func(c *CPU) {
			c.writeR8(dest, c.readR8(src))
		}
	}

	// ALU-on-A block: operation group in bits 5:3, operand in bits 2:0.
	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		group := uint8(opcode>>3) & 0x7
		src := uint8(opcode) & 0x7
		baseTable[opcode] = func(c *CPU) {
			val := c.readR8(src)
			switch group {
			case 0:
				c.add(val)
			case 1:
				c.adc(val)
			case 2:
				c.sub(val)
			case 3:
				c.sbc(val)
			case 4:
				c.and(val)
			case 5:
				c.xor(val)
			case 6:
				c.or(val)
			default:
				c.cp(val)
			}
		}
	}
}
