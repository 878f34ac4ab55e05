// Package cpu implements the Sharp LR35902 instruction interpreter: the
// register file, the base and CB-prefixed dispatch tables, interrupt
// servicing, and HALT. Grounded throughout on jeebie/cpu (registers.go,
// instructions.go, opcodes.go, opcodes_cb.go, mapping.go) and, for the
// interrupt/HALT semantics the reference never finished, on
// jeebie/cpu/interrupts_test.go — the one file in the corpus that pins down
// exact expected behavior against a real implementation.
package cpu

import (
	"github.com/halfcarry/gbcore/bit"
	"github.com/halfcarry/gbcore/corelog"
)

// Bus is the memory interface the CPU drives. A concrete *bus.Bus satisfies
// it; the interface keeps this package free of an import-cycle-prone
// dependency on the bus package, mirroring the non-owning-reference
// ownership model in spec.md section 3.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	// Tick advances the clock by one M-cycle without touching memory. Used
	// for the handful of opcodes whose documented timing includes an
	// internal cycle beyond their natural memory-access count.
	Tick()
	// Peek and Poke access memory without advancing the scheduler. Used
	// only for the IF/IE bookkeeping interrupt dispatch does for free on
	// real hardware; never for ordinary instruction execution.
	Peek(addr uint16) uint8
	Poke(addr uint16, value uint8)
}

// Flag bits within F. The low nibble of F is always zero.
type Flag uint8

const (
	FlagZ Flag = 1 << 7
	FlagN Flag = 1 << 6
	FlagH Flag = 1 << 5
	FlagC Flag = 1 << 4
)

// CPU holds the full LR35902 register file plus the interrupt/HALT state
// machine. It holds a single non-owning reference to the bus.
type CPU struct {
	bus    Bus
	logger *corelog.Logger

	a, f byte
	b, c byte
	d, e byte
	h, l byte

	sp, pc uint16

	ime       bool
	eiPending bool
	halted    bool
	haltBug   bool
}

// New builds a CPU driving bus, powered off (call Reset before Step).
func New(bus Bus, logger *corelog.Logger) *CPU {
	return &CPU{bus: bus, logger: logger}
}

// Reset restores the documented DMG post-boot-ROM register state.
func (c *CPU) Reset() {
	c.a, c.f = 0x01, 0xB0
	c.b, c.c = 0x00, 0x13
	c.d, c.e = 0x00, 0xD8
	c.h, c.l = 0x01, 0x4D
	c.sp = 0xFFFE
	c.pc = 0x0100

	c.ime = false
	c.eiPending = false
	c.halted = false
	c.haltBug = false
}

func (c *CPU) af() uint16 { return bit.Combine(c.a, c.f) }
func (c *CPU) bc() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) de() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) hl() uint16 { return bit.Combine(c.h, c.l) }

func (c *CPU) setAF(v uint16) {
	c.a = bit.High(v)
	c.f = bit.Low(v) & 0xF0 // low nibble of F is always zero
}
func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }

func (c *CPU) setFlag(f Flag)   { c.f |= uint8(f) }
func (c *CPU) clearFlag(f Flag) { c.f &^= uint8(f) }
func (c *CPU) isSet(f Flag) bool {
	return c.f&uint8(f) != 0
}
func (c *CPU) setFlagTo(f Flag, cond bool) {
	if cond {
		c.setFlag(f)
	} else {
		c.clearFlag(f)
	}
}

// readR8/writeR8 address the eight 8-bit operand slots opcode bit fields
// 2:0 (and 5:3 for LD r,r') select: B, C, D, E, H, L, (HL), A. Index 6,
// (HL), is the only one that touches the bus.
func (c *CPU) readR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.bus.Read(c.hl())
	default:
		return c.a
	}
}

func (c *CPU) writeR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.b = v
	case 1:
		c.c = v
	case 2:
		c.d = v
	case 3:
		c.e = v
	case 4:
		c.h = v
	case 5:
		c.l = v
	case 6:
		c.bus.Write(c.hl(), v)
	default:
		c.a = v
	}
}

// Step checks for interrupts and HALT before the fetch. If an interrupt is
// dispatched, that dispatch is the whole Step and no opcode is fetched; if
// the CPU stays halted, Step idles for one M-cycle; otherwise it executes
// exactly one instruction.
func (c *CPU) Step() {
	pending, dispatched := c.handleInterrupts()
	if dispatched {
		return
	}

	if c.halted {
		if pending {
			c.halted = false
			if !c.ime {
				c.haltBug = true
			}
		} else {
			c.bus.Read(c.pc) // keep the clock moving while halted
			return
		}
	}

	if c.eiPending {
		c.eiPending = false
		c.ime = true
	}

	opcode := c.bus.Read(c.pc)
	if c.haltBug {
		// The halt bug: the byte just fetched is executed again, because
		// PC failed to advance past it.
		c.haltBug = false
	} else {
		c.pc++
	}

	if opcode == 0xCB {
		cb := c.bus.Read(c.pc)
		c.pc++
		c.execCB(cb)
		return
	}

	baseTable[opcode](c)
}

// illegal handles one of the 11 unused base opcodes. Real silicon locks up
// permanently on these; Step mirrors that instead of panicking, since a
// panic would cross the package's public API (spec.md section 7: the core
// never terminates the process itself, it logs ERR and lets the host's
// logger sink decide).
func (c *CPU) illegal() {
	c.logger.Err(corelog.CPU, "illegal opcode executed, CPU locked up", "pc", c.pc)
	c.halted = true
	c.pc--
}
