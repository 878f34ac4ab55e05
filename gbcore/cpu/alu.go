package cpu

// ALU primitives shared by the base table's 0x80-0xBF block and its
// immediate-operand counterparts (0xC6, 0xCE, 0xD6, ...). Flag formulas
// follow the documented LR35902 behavior, grounded on the shapes of
// jeebie/cpu/instructions.go's addToA/sub/sbc/and/or/xor (teacher computes
// the same half-carry/carry conditions; renamed and restructured here to
// operate on the CPU's own register file instead of threading registers
// through free functions).

func (c *CPU) add(value uint8) {
	result := uint16(c.a) + uint16(value)
	c.setFlagTo(FlagH, (c.a&0xF)+(value&0xF) > 0xF)
	c.setFlagTo(FlagC, result > 0xFF)
	c.clearFlag(FlagN)
	c.a = uint8(result)
	c.setFlagTo(FlagZ, c.a == 0)
}

func (c *CPU) adc(value uint8) {
	carry := uint16(0)
	if c.isSet(FlagC) {
		carry = 1
	}
	result := uint16(c.a) + uint16(value) + carry
	c.setFlagTo(FlagH, (c.a&0xF)+(value&0xF)+uint8(carry) > 0xF)
	c.setFlagTo(FlagC, result > 0xFF)
	c.clearFlag(FlagN)
	c.a = uint8(result)
	c.setFlagTo(FlagZ, c.a == 0)
}

func (c *CPU) sub(value uint8) {
	c.setFlagTo(FlagH, (c.a&0xF) < (value&0xF))
	c.setFlagTo(FlagC, c.a < value)
	c.setFlag(FlagN)
	c.a = c.a - value
	c.setFlagTo(FlagZ, c.a == 0)
}

func (c *CPU) sbc(value uint8) {
	carry := uint8(0)
	if c.isSet(FlagC) {
		carry = 1
	}
	result := int16(c.a) - int16(value) - int16(carry)
	c.setFlagTo(FlagH, int16(c.a&0xF)-int16(value&0xF)-int16(carry) < 0)
	c.setFlagTo(FlagC, result < 0)
	c.setFlag(FlagN)
	c.a = uint8(result)
	c.setFlagTo(FlagZ, c.a == 0)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagTo(FlagZ, c.a == 0)
	c.clearFlag(FlagN)
	c.setFlag(FlagH)
	c.clearFlag(FlagC)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagTo(FlagZ, c.a == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	c.clearFlag(FlagC)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagTo(FlagZ, c.a == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	c.clearFlag(FlagC)
}

func (c *CPU) cp(value uint8) {
	saved := c.a
	c.sub(value)
	c.a = saved // CP discards the result, flags only
}

func (c *CPU) incR8(v uint8) uint8 {
	result := v + 1
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.setFlagTo(FlagH, v&0xF == 0xF)
	return result
}

func (c *CPU) decR8(v uint8) uint8 {
	result := v - 1
	c.setFlagTo(FlagZ, result == 0)
	c.setFlag(FlagN)
	c.setFlagTo(FlagH, v&0xF == 0)
	return result
}

func (c *CPU) addHL(value uint16) {
	hl := c.hl()
	result := uint32(hl) + uint32(value)
	c.setFlagTo(FlagH, (hl&0xFFF)+(value&0xFFF) > 0xFFF)
	c.setFlagTo(FlagC, result > 0xFFFF)
	c.clearFlag(FlagN)
	c.setHL(uint16(result))
}

// addSPFlags computes the result and H/C flags for ADD SP,s8 and
// LD HL,SP+s8, which share identical flag semantics: the addition is
// performed as if offset were an unsigned byte added to SP's low byte, with
// Z and N always cleared regardless of the true signed result.
func addSPFlags(sp uint16, offset int8) (result uint16, half bool, carry bool) {
	n := uint16(uint8(offset))
	half = (sp&0xF)+(n&0xF) > 0xF
	carry = (sp&0xFF)+(n&0xFF) > 0xFF
	result = uint16(int32(sp) + int32(offset))
	return result, half, carry
}

func (c *CPU) daa() {
	a := c.a
	adjust := uint8(0)
	carry := c.isSet(FlagC)

	if !c.isSet(FlagN) {
		if c.isSet(FlagH) || a&0xF > 9 {
			adjust |= 0x06
		}
		if carry || a > 0x99 {
			adjust |= 0x60
			carry = true
		}
		a += adjust
	} else {
		if c.isSet(FlagH) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		a -= adjust
	}

	c.setFlagTo(FlagZ, a == 0)
	c.clearFlag(FlagH)
	c.setFlagTo(FlagC, carry)
	c.a = a
}

func (c *CPU) cpl() {
	c.a = ^c.a
	c.setFlag(FlagN)
	c.setFlag(FlagH)
}

func (c *CPU) scf() {
	c.setFlag(FlagC)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
}

func (c *CPU) ccf() {
	c.setFlagTo(FlagC, !c.isSet(FlagC))
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
}

// rlc/rrc/rl/rr/sla/sra/swap/srl implement the CB-table shift/rotate group.
// Each sets Z from the true result; the non-CB accumulator forms (RLCA,
// RRCA, RLA, RRA) always clear Z regardless, so they're implemented
// separately in opcodes.go.

func (c *CPU) rlc(v uint8) uint8 {
	carry := v >> 7
	result := (v << 1) | carry
	c.setFlagTo(FlagC, carry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v & 1
	result := (v >> 1) | (carry << 7)
	c.setFlagTo(FlagC, carry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.isSet(FlagC) {
		oldCarry = 1
	}
	newCarry := v >> 7
	result := (v << 1) | oldCarry
	c.setFlagTo(FlagC, newCarry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := uint8(0)
	if c.isSet(FlagC) {
		oldCarry = 1
	}
	newCarry := v & 1
	result := (v >> 1) | (oldCarry << 7)
	c.setFlagTo(FlagC, newCarry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v >> 7
	result := v << 1
	c.setFlagTo(FlagC, carry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v & 1
	result := (v >> 1) | (v & 0x80)
	c.setFlagTo(FlagC, carry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := (v << 4) | (v >> 4)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	c.clearFlag(FlagC)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v & 1
	result := v >> 1
	c.setFlagTo(FlagC, carry == 1)
	c.setFlagTo(FlagZ, result == 0)
	c.clearFlag(FlagN)
	c.clearFlag(FlagH)
	return result
}

func (c *CPU) bitTest(n uint8, v uint8) {
	c.setFlagTo(FlagZ, v&(1<<n) == 0)
	c.clearFlag(FlagN)
	c.setFlag(FlagH)
}
