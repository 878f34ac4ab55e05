// Package bus implements the 16-bit address space: decode, the
// scheduler-stepping-per-access contract, serial line buffering, and the
// interrupt-flag/enable registers. Grounded on jeebie/memory/mem.go (region
// decode, unmapped-access logging, IF/IE wiring) and jeebie/serial's
// LogSink (the line-buffering idea, simplified to match spec.md section
// 4.3's narrower contract: no SC transfer state machine, just "buffer FF01
// writes until a newline, then trace-log and clear").
package bus

import (
	"github.com/halfcarry/gbcore/addr"
	"github.com/halfcarry/gbcore/cartridge"
	"github.com/halfcarry/gbcore/corelog"
	"github.com/halfcarry/gbcore/scheduler"
	"github.com/halfcarry/gbcore/timer"
)

const (
	wramSize = 0x2000
	hramSize = 0x7F
)

// Bus owns WRAM/HRAM and the IF/IE registers, and holds non-owning
// references to the cartridge, scheduler, timer, and logger, matching
// spec.md section 3's ownership model.
type Bus struct {
	cart   *cartridge.Cartridge
	sched  *scheduler.Scheduler
	timer  *timer.Timer
	logger *corelog.Logger

	wram [wramSize]byte
	hram [hramSize]byte

	ifReg uint8
	ieReg uint8

	serialLine []byte
}

// New wires a Bus around the given scheduler and logger. The cartridge and
// timer are attached separately (SetCartridge/SetTimer): the cartridge only
// arrives with LoadCart, and the root Context constructs the timer with an
// interrupt callback into this bus.
func New(sched *scheduler.Scheduler, logger *corelog.Logger) *Bus {
	return &Bus{sched: sched, logger: logger}
}

// SetCartridge attaches the active cartridge. Called by Context on
// LoadCart.
func (b *Bus) SetCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
}

// SetTimer attaches the timer. Called once during Context construction.
func (b *Bus) SetTimer(t *timer.Timer) {
	b.timer = t
}

// RequestInterrupt sets the given interrupt's bit in IF. Exposed for the
// timer's raiseInterrupt callback.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	b.ifReg |= uint8(i)
}

// Reset clears WRAM/HRAM and the interrupt registers. The cartridge is left
// attached (a reset does not unload the ROM).
func (b *Bus) Reset() {
	b.wram = [wramSize]byte{}
	b.hram = [hramSize]byte{}
	b.ifReg = 0
	b.ieReg = 0
	b.serialLine = b.serialLine[:0]
}

// Read performs one scheduler step, then decodes and returns the byte at
// addr. Unmapped regions return 0xFF and log a warning.
func (b *Bus) Read(address uint16) uint8 {
	b.sched.Step()
	return b.readNoTick(address)
}

// Write decodes and dispatches the write, then performs one scheduler step.
// Unmapped regions are discarded and log a warning.
func (b *Bus) Write(address uint16, value uint8) {
	b.writeNoTick(address, value)
	b.sched.Step()
}

// Peek reads like Read but never advances the scheduler. Used by the CPU to
// probe IF/IE during interrupt dispatch, which real hardware checks for
// free, and is reserved more generally for a future disassembler/inspection
// tool; ordinary instruction execution must never use it to read memory.
func (b *Bus) Peek(address uint16) uint8 {
	return b.readNoTick(address)
}

// Poke writes like Write but never advances the scheduler. Used by the CPU
// to clear an IF bit as part of interrupt dispatch, which is bundled into
// the dispatch's own accounted-for internal cycles rather than costing a
// bus cycle of its own.
func (b *Bus) Poke(address uint16, value uint8) {
	b.writeNoTick(address, value)
}

func (b *Bus) readNoTick(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		return b.cart.Read(address)
	case address >= 0x8000 && address <= 0x9FFF:
		return 0xFF // VRAM stub
	case address >= 0xA000 && address <= 0xBFFF:
		return b.cart.Read(address)
	case address >= 0xC000 && address <= 0xDFFF:
		return b.wram[address-0xC000]
	case address >= 0xE000 && address <= 0xFDFF:
		return b.wram[(address-0xE000)%wramSize]
	case address >= 0xFE00 && address <= 0xFE9F:
		return 0xFF // OAM stub
	case address == addr.SB:
		return 0 // write-only line buffer; nothing meaningful to read back
	case address == addr.DIV:
		return b.timer.ReadDIV()
	case address == addr.TIMA:
		return b.timer.ReadTIMA()
	case address == addr.TMA:
		return b.timer.ReadTMA()
	case address == addr.TAC:
		return b.timer.ReadTAC()
	case address == addr.IF:
		return b.ifReg
	case address == addr.LY:
		return 0xFF // LCD stub, no PPU implemented
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.hram[address-0xFF80]
	case address == addr.IE:
		return b.ieReg
	default:
		b.logger.Warn(corelog.Bus, "read from unmapped address", "address", address)
		return 0xFF
	}
}

func (b *Bus) writeNoTick(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		b.cart.Write(address, value)
	case address >= 0x8000 && address <= 0x9FFF:
		// VRAM stub, discarded
	case address >= 0xA000 && address <= 0xBFFF:
		b.cart.Write(address, value)
	case address >= 0xC000 && address <= 0xDFFF:
		b.wram[address-0xC000] = value
	case address >= 0xE000 && address <= 0xFDFF:
		b.wram[(address-0xE000)%wramSize] = value
	case address >= 0xFE00 && address <= 0xFE9F:
		// OAM stub, discarded
	case address == addr.SB:
		b.appendSerialByte(value)
	case address == addr.DIV:
		b.timer.WriteDIV(value)
	case address == addr.TIMA:
		b.timer.WriteTIMA(value)
	case address == addr.TMA:
		b.timer.WriteTMA(value)
	case address == addr.TAC:
		b.timer.WriteTAC(value)
	case address == addr.IF:
		b.ifReg = value
	case address >= 0xFF80 && address <= 0xFFFE:
		b.hram[address-0xFF80] = value
	case address == addr.IE:
		b.ieReg = value
	default:
		b.logger.Warn(corelog.Bus, "write to unmapped address", "address", address, "value", value)
	}
}

// Tick advances the scheduler by one M-cycle without touching any address
// space. Used by the CPU for the handful of LR35902 opcodes whose documented
// timing includes an internal cycle beyond their natural memory-access
// count (e.g. 16-bit INC/DEC, CALL, RET, PUSH, RST) — still routed through
// the bus rather than the scheduler directly, so every tick of wall-clock
// time the core produces has one, auditable source.
func (b *Bus) Tick() {
	b.sched.Step()
}

func (b *Bus) appendSerialByte(value byte) {
	if value == 0 || value == '\n' || value == '\r' {
		if len(b.serialLine) > 0 {
			b.logger.Trace(corelog.Bus, "serial line", "line", string(b.serialLine))
			b.serialLine = b.serialLine[:0]
		}
		return
	}
	b.serialLine = append(b.serialLine, value)
}
