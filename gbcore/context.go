// Package gbcore wires the scheduler, timer, bus, cartridge, and CPU
// packages into a single runnable unit, and is the library's only public
// entry point. Grounded on jeebie/core.go's Emulator struct (the root
// object owning cpu/mmu/gpu and exposing New/NewWithFile), simplified to
// this module's narrower scope: no GPU, no debugger state machine, no
// instruction/frame counters.
package gbcore

import (
	"github.com/halfcarry/gbcore/addr"
	"github.com/halfcarry/gbcore/bus"
	"github.com/halfcarry/gbcore/cartridge"
	"github.com/halfcarry/gbcore/corelog"
	"github.com/halfcarry/gbcore/cpu"
	"github.com/halfcarry/gbcore/scheduler"
	"github.com/halfcarry/gbcore/timer"
)

// LoadResult reports the outcome of LoadCart.
type LoadResult int

const (
	Ok LoadResult = iota
	BadHeaderSize
	InvalidChecksum
	UnsupportedMBC
)

func (r LoadResult) String() string {
	switch r {
	case Ok:
		return "ok"
	case BadHeaderSize:
		return "bad header size"
	case InvalidChecksum:
		return "invalid checksum"
	case UnsupportedMBC:
		return "unsupported MBC"
	default:
		return "unknown"
	}
}

// Context is the root object: it owns the scheduler, bus, timer, and CPU,
// and is the single point through which a host drives emulation.
type Context struct {
	logger *corelog.Logger
	sched  *scheduler.Scheduler
	bus    *bus.Bus
	timer  *timer.Timer
	cpu    *cpu.CPU
}

// NewContext wires a fresh Context from the given logger configuration. The
// CPU starts powered on (Reset is called here) but with no cartridge
// attached; call LoadCart before Step.
func NewContext(cfg corelog.Config) *Context {
	logger := corelog.New(cfg)
	sched := scheduler.New()
	b := bus.New(sched, logger)

	ctx := &Context{logger: logger, sched: sched, bus: b}

	t := timer.New(sched, func() { b.RequestInterrupt(addr.TimerInterrupt) })
	b.SetTimer(t)
	ctx.timer = t

	ctx.cpu = cpu.New(b, logger)
	ctx.cpu.Reset()

	return ctx
}

// LoadCart parses and attaches a cartridge image. On any error the Context
// is left unchanged: a previously attached cartridge, if any, stays
// attached, the CPU's state is unaffected, and a subsequent successful
// LoadCart is safe.
func (c *Context) LoadCart(data []byte) LoadResult {
	cart, err := cartridge.New(data)
	if err != nil {
		switch err {
		case cartridge.ErrBadHeaderSize:
			return BadHeaderSize
		case cartridge.ErrInvalidChecksum:
			return InvalidChecksum
		default:
			return UnsupportedMBC
		}
	}

	c.bus.SetCartridge(cart)
	c.logger.Info(corelog.Ctx, "cartridge loaded", "title", cart.Title())
	return Ok
}

// Reset restores the CPU's documented power-on register state and clears
// WRAM/HRAM/interrupt registers. The attached cartridge is left in place.
func (c *Context) Reset() {
	c.bus.Reset()
	c.timer.Reset()
	c.cpu.Reset()
}

// Step advances the CPU by one step (see cpu.CPU.Step): it either services
// a pending interrupt, idles one M-cycle while halted, or executes exactly
// one instruction.
func (c *Context) Step() {
	c.cpu.Step()
}
