package timer

import (
	"testing"

	"github.com/halfcarry/gbcore/scheduler"
)

func TestOverflowReloadsAndInterrupts(t *testing.T) {
	s := scheduler.New()
	interrupted := false
	tm := New(s, func() { interrupted = true })

	tm.WriteTMA(0x80)
	tm.WriteTIMA(0xFD)
	tm.WriteTAC(0x05) // enable, 16 M-cycle period

	// 3 periods of 16 M-cycles brings TIMA from 0xFD to the overflow point
	// (0xFD -> 0xFE -> 0xFF -> overflow on the 3rd). The reload and
	// interrupt land one further M-cycle later (the documented 4-tick gap
	// between zeroing TIMA and loading TMA), so step one M-cycle past the
	// 3*16 boundary before asserting the fully-settled state.
	for i := 0; i < 3*16+1; i++ {
		s.Step()
	}

	if tm.ReadTIMA() != 0x80 {
		t.Fatalf("TIMA = 0x%02X, want 0x80", tm.ReadTIMA())
	}
	if !interrupted {
		t.Fatal("expected timer interrupt to have fired")
	}
}

func TestTimaIsBrieflyZeroBetweenOverflowAndReload(t *testing.T) {
	s := scheduler.New()
	tm := New(s, func() {})

	tm.WriteTMA(0x80)
	tm.WriteTIMA(0xFF)
	tm.WriteTAC(0x05) // enable, 16 M-cycle period

	for i := 0; i < 16; i++ {
		s.Step()
	}
	if tm.ReadTIMA() != 0 {
		t.Fatalf("TIMA = 0x%02X immediately after overflow, want 0x00", tm.ReadTIMA())
	}

	for i := 0; i < 4; i++ {
		s.Step()
	}
	if tm.ReadTIMA() != 0x80 {
		t.Fatalf("TIMA = 0x%02X after the reload gap, want 0x80", tm.ReadTIMA())
	}
}

func TestPeriodicIncrement(t *testing.T) {
	s := scheduler.New()
	tm := New(s, func() {})
	tm.WriteTAC(0x05) // enable, 16 M-cycle period

	for i := 0; i < 16; i++ {
		s.Step()
	}
	if tm.ReadTIMA() != 1 {
		t.Fatalf("TIMA = %d after one period, want 1", tm.ReadTIMA())
	}
}

func TestDisablingTimerCancelsIncrement(t *testing.T) {
	s := scheduler.New()
	tm := New(s, func() {})
	tm.WriteTAC(0x05)

	for i := 0; i < 8; i++ {
		s.Step()
	}
	tm.WriteTAC(0x00) // disable

	for i := 0; i < 100; i++ {
		s.Step()
	}
	if tm.ReadTIMA() != 0 {
		t.Fatalf("TIMA = %d after disabling, want 0 (no more increments)", tm.ReadTIMA())
	}
}

func TestWriteTIMACancelsPendingReload(t *testing.T) {
	s := scheduler.New()
	interrupted := false
	tm := New(s, func() { interrupted = true })

	tm.WriteTMA(0x80)
	tm.WriteTIMA(0xFF)
	tm.WriteTAC(0x05)

	for i := 0; i < 16; i++ {
		s.Step()
	}
	// TIMA just zeroed; write during the reload gap should cancel the reload.
	tm.WriteTIMA(0x10)

	for i := 0; i < 10; i++ {
		s.Step()
	}
	if interrupted {
		t.Fatal("expected the pending reload/interrupt to have been cancelled")
	}
	if tm.ReadTIMA() != 0x10 && tm.ReadTIMA() != 0x11 {
		t.Fatalf("TIMA = 0x%02X, want close to the written 0x10 (plus possible natural increments)", tm.ReadTIMA())
	}
}

func TestDIVDerivesFromSchedulerClock(t *testing.T) {
	s := scheduler.New()
	tm := New(s, func() {})

	for i := 0; i < 64; i++ {
		s.Step()
	}
	if got := tm.ReadDIV(); got != 1 {
		t.Fatalf("DIV = %d after 256 ticks, want 1", got)
	}
}

func TestWriteDIVResetsCounter(t *testing.T) {
	s := scheduler.New()
	tm := New(s, func() {})

	for i := 0; i < 64; i++ {
		s.Step()
	}
	tm.WriteDIV(0xFF) // any value resets DIV to 0
	if tm.ReadDIV() != 0 {
		t.Fatalf("DIV = %d immediately after a write, want 0", tm.ReadDIV())
	}
}
