package cpu

import "github.com/halfcarry/gbcore/bit"

// This file implements every base-table opcode outside the two
// bit-field-decoded blocks (0x40-0x7F LD r,r'/HALT and 0x80-0xBF ALU-on-A),
// which dispatch.go builds directly from the opcode's register-index bits.
// Grounded on jeebie/cpu/instructions.go for the ALU/stack/jump primitives
// and on the documented LR35902 cycle-count table for per-opcode timing;
// every opcode here reaches its documented M-cycle count purely from
// Read/Write calls plus, where the real instruction has an internal cycle
// beyond its natural memory-access count, one or more explicit bus.Tick().

func (c *CPU) fetch8() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return bit.Combine(hi, lo)
}

func (c *CPU) push(v uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(v))
	c.sp--
	c.bus.Write(c.sp, bit.Low(v))
}

func (c *CPU) pop() uint16 {
	lo := c.bus.Read(c.sp)
	c.sp++
	hi := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(hi, lo)
}

// pushOp accounts for the one internal cycle every PUSH/RST/CALL-taken
// shares before the two natural push writes.
func (c *CPU) pushOp(v uint16) {
	c.bus.Tick()
	c.push(v)
}

func (c *CPU) retCond(cond bool) {
	c.bus.Tick()
	if !cond {
		return
	}
	c.pc = c.pop()
	c.bus.Tick()
}

func (c *CPU) jpCond(cond bool) {
	target := c.fetch16()
	if cond {
		c.pc = target
		c.bus.Tick()
	}
}

func (c *CPU) callCond(cond bool) {
	target := c.fetch16()
	if cond {
		c.bus.Tick()
		c.push(c.pc)
		c.pc = target
	}
}

func (c *CPU) jr(cond bool) {
	offset := int8(c.fetch8())
	if cond {
		c.pc = uint16(int32(c.pc) + int32(offset))
		c.bus.Tick()
	}
}

func op00(c *CPU) {} // NOP

func op01(c *CPU) { c.setBC(c.fetch16()) }
func op11(c *CPU) { c.setDE(c.fetch16()) }
func op21(c *CPU) { c.setHL(c.fetch16()) }
func op31(c *CPU) { c.sp = c.fetch16() }

func op02(c *CPU) { c.bus.Write(c.bc(), c.a) }
func op12(c *CPU) { c.bus.Write(c.de(), c.a) }
func op22(c *CPU) { c.bus.Write(c.hl(), c.a); c.setHL(c.hl() + 1) }
func op32(c *CPU) { c.bus.Write(c.hl(), c.a); c.setHL(c.hl() - 1) }

func op0A(c *CPU) { c.a = c.bus.Read(c.bc()) }
func op1A(c *CPU) { c.a = c.bus.Read(c.de()) }
func op2A(c *CPU) { c.a = c.bus.Read(c.hl()); c.setHL(c.hl() + 1) }
func op3A(c *CPU) { c.a = c.bus.Read(c.hl()); c.setHL(c.hl() - 1) }

func op03(c *CPU) { c.bus.Tick(); c.setBC(c.bc() + 1) }
func op13(c *CPU) { c.bus.Tick(); c.setDE(c.de() + 1) }
func op23(c *CPU) { c.bus.Tick(); c.setHL(c.hl() + 1) }
func op33(c *CPU) { c.bus.Tick(); c.sp = c.sp + 1 }

func op0B(c *CPU) { c.bus.Tick(); c.setBC(c.bc() - 1) }
func op1B(c *CPU) { c.bus.Tick(); c.setDE(c.de() - 1) }
func op2B(c *CPU) { c.bus.Tick(); c.setHL(c.hl() - 1) }
func op3B(c *CPU) { c.bus.Tick(); c.sp = c.sp - 1 }

func op09(c *CPU) { c.bus.Tick(); c.addHL(c.bc()) }
func op19(c *CPU) { c.bus.Tick(); c.addHL(c.de()) }
func op29(c *CPU) { c.bus.Tick(); c.addHL(c.hl()) }
func op39(c *CPU) { c.bus.Tick(); c.addHL(c.sp) }

func op04(c *CPU) { c.b = c.incR8(c.b) }
func op0C(c *CPU) { c.c = c.incR8(c.c) }
func op14(c *CPU) { c.d = c.incR8(c.d) }
func op1C(c *CPU) { c.e = c.incR8(c.e) }
func op24(c *CPU) { c.h = c.incR8(c.h) }
func op2C(c *CPU) { c.l = c.incR8(c.l) }
func op34(c *CPU) {
	v := c.bus.Read(c.hl())
	c.bus.Write(c.hl(), c.incR8(v))
}
func op3C(c *CPU) { c.a = c.incR8(c.a) }

func op05(c *CPU) { c.b = c.decR8(c.b) }
func op0D(c *CPU) { c.c = c.decR8(c.c) }
func op15(c *CPU) { c.d = c.decR8(c.d) }
func op1D(c *CPU) { c.e = c.decR8(c.e) }
func op25(c *CPU) { c.h = c.decR8(c.h) }
func op2D(c *CPU) { c.l = c.decR8(c.l) }
func op35(c *CPU) {
	v := c.bus.Read(c.hl())
	c.bus.Write(c.hl(), c.decR8(v))
}
func op3D(c *CPU) { c.a = c.decR8(c.a) }

func op06(c *CPU) { c.b = c.fetch8() }
func op0E(c *CPU) { c.c = c.fetch8() }
func op16(c *CPU) { c.d = c.fetch8() }
func op1E(c *CPU) { c.e = c.fetch8() }
func op26(c *CPU) { c.h = c.fetch8() }
func op2E(c *CPU) { c.l = c.fetch8() }
func op36(c *CPU) { c.bus.Write(c.hl(), c.fetch8()) }
func op3E(c *CPU) { c.a = c.fetch8() }

// RLCA/RRCA/RLA/RRA always clear Z, unlike their CB-table counterparts.
func op07(c *CPU) { c.a = c.rlc(c.a); c.clearFlag(FlagZ) }
func op0F(c *CPU) { c.a = c.rrc(c.a); c.clearFlag(FlagZ) }
func op17(c *CPU) { c.a = c.rl(c.a); c.clearFlag(FlagZ) }
func op1F(c *CPU) { c.a = c.rr(c.a); c.clearFlag(FlagZ) }

func op08(c *CPU) {
	target := c.fetch16()
	c.bus.Write(target, bit.Low(c.sp))
	c.bus.Write(target+1, bit.High(c.sp))
}

func op10(c *CPU) { c.fetch8() } // STOP: no speed-switch/power state to model, treated as a 2-byte NOP

func op18(c *CPU) { c.jr(true) }
func op20(c *CPU) { c.jr(!c.isSet(FlagZ)) }
func op28(c *CPU) { c.jr(c.isSet(FlagZ)) }
func op30(c *CPU) { c.jr(!c.isSet(FlagC)) }
func op38(c *CPU) { c.jr(c.isSet(FlagC)) }

func op27(c *CPU) { c.daa() }
func op2F(c *CPU) { c.cpl() }
func op37(c *CPU) { c.scf() }
func op3F(c *CPU) { c.ccf() }

func op76(c *CPU) { c.halted = true }

func opC0(c *CPU) { c.retCond(!c.isSet(FlagZ)) }
func opC8(c *CPU) { c.retCond(c.isSet(FlagZ)) }
func opD0(c *CPU) { c.retCond(!c.isSet(FlagC)) }
func opD8(c *CPU) { c.retCond(c.isSet(FlagC)) }
func opC9(c *CPU) { c.pc = c.pop(); c.bus.Tick() }
func opD9(c *CPU) { c.pc = c.pop(); c.bus.Tick(); c.ime = true } // RETI, no EI-style delay

func opC1(c *CPU) { c.setBC(c.pop()) }
func opD1(c *CPU) { c.setDE(c.pop()) }
func opE1(c *CPU) { c.setHL(c.pop()) }
func opF1(c *CPU) { c.setAF(c.pop()) } // setAF already masks F's low nibble to zero

func opC5(c *CPU) { c.pushOp(c.bc()) }
func opD5(c *CPU) { c.pushOp(c.de()) }
func opE5(c *CPU) { c.pushOp(c.hl()) }
func opF5(c *CPU) { c.pushOp(c.af()) }

func opC2(c *CPU) { c.jpCond(!c.isSet(FlagZ)) }
func opCA(c *CPU) { c.jpCond(c.isSet(FlagZ)) }
func opD2(c *CPU) { c.jpCond(!c.isSet(FlagC)) }
func opDA(c *CPU) { c.jpCond(c.isSet(FlagC)) }
func opC3(c *CPU) { c.jpCond(true) }
func opE9(c *CPU) { c.pc = c.hl() } // JP (HL): jumps to the value in HL, no memory read

func opC4(c *CPU) { c.callCond(!c.isSet(FlagZ)) }
func opCC(c *CPU) { c.callCond(c.isSet(FlagZ)) }
func opD4(c *CPU) { c.callCond(!c.isSet(FlagC)) }
func opDC(c *CPU) { c.callCond(c.isSet(FlagC)) }
func opCD(c *CPU) { c.callCond(true) }

func rst(vector uint16) opFunc {
	return func(c *CPU) { c.pushOp(c.pc); c.pc = vector }
}

func opC6(c *CPU) { c.add(c.fetch8()) }
func opCE(c *CPU) { c.adc(c.fetch8()) }
func opD6(c *CPU) { c.sub(c.fetch8()) }
func opDE(c *CPU) { c.sbc(c.fetch8()) }
func opE6(c *CPU) { c.and(c.fetch8()) }
func opEE(c *CPU) { c.xor(c.fetch8()) }
func opF6(c *CPU) { c.or(c.fetch8()) }
func opFE(c *CPU) { c.cp(c.fetch8()) }

func opE0(c *CPU) {
	offset := c.fetch8()
	c.bus.Write(0xFF00+uint16(offset), c.a)
}
func opF0(c *CPU) {
	offset := c.fetch8()
	c.a = c.bus.Read(0xFF00 + uint16(offset))
}
func opE2(c *CPU) { c.bus.Write(0xFF00+uint16(c.c), c.a) }
func opF2(c *CPU) { c.a = c.bus.Read(0xFF00 + uint16(c.c)) }

func opEA(c *CPU) { c.bus.Write(c.fetch16(), c.a) }
func opFA(c *CPU) { c.a = c.bus.Read(c.fetch16()) }

func opE8(c *CPU) {
	offset := int8(c.fetch8())
	c.bus.Tick()
	c.bus.Tick()
	result, half, carry := addSPFlags(c.sp, offset)
	c.clearFlag(FlagZ)
	c.clearFlag(FlagN)
	c.setFlagTo(FlagH, half)
	c.setFlagTo(FlagC, carry)
	c.sp = result
}

func opF8(c *CPU) {
	offset := int8(c.fetch8())
	c.bus.Tick()
	result, half, carry := addSPFlags(c.sp, offset)
	c.clearFlag(FlagZ)
	c.clearFlag(FlagN)
	c.setFlagTo(FlagH, half)
	c.setFlagTo(FlagC, carry)
	c.setHL(result)
}

func opF9(c *CPU) { c.bus.Tick(); c.sp = c.hl() }

func opF3(c *CPU) { c.ime = false; c.eiPending = false }
func opFB(c *CPU) { c.eiPending = true }

func illegalOp(c *CPU) { c.illegal() }
