package cpu

import "github.com/halfcarry/gbcore/bit"

// execCB decodes and executes a CB-prefixed opcode entirely from its bit
// fields — register index in bits 2:0 and operation group in bits 5:3 —
// rather than through a 256-entry function table. Every CB opcode is valid,
// so unlike the base table there's no illegal-opcode case to handle.
//
// Timing falls out for free: the two natural accesses for the CB prefix and
// its opcode byte already account for the register-operand forms (8 cycles).
// The (HL) forms add their own natural bus access for the read, and (for
// every group except BIT, which never writes back) a further natural access
// for the write — giving exactly 12 cycles for BIT (HL) and 16 for every
// other (HL) form, with no extra Tick() padding required anywhere in this
// table.
func (c *CPU) execCB(op uint8) {
	regIdx := op & 0x7
	groupIdx := (op >> 3) & 0x7

	switch {
	case op < 0x40:
		val := c.readR8(regIdx)
		var result uint8
		switch groupIdx {
		case 0:
			result = c.rlc(val)
		case 1:
			result = c.rrc(val)
		case 2:
			result = c.rl(val)
		case 3:
			result = c.rr(val)
		case 4:
			result = c.sla(val)
		case 5:
			result = c.sra(val)
		case 6:
			result = c.swap(val)
		default:
			result = c.srl(val)
		}
		c.writeR8(regIdx, result)

	case op < 0x80:
		c.bitTest(groupIdx, c.readR8(regIdx))

	case op < 0xC0:
		c.writeR8(regIdx, bit.Clear(groupIdx, c.readR8(regIdx)))

	default:
		c.writeR8(regIdx, bit.Set(groupIdx, c.readR8(regIdx)))
	}
}
