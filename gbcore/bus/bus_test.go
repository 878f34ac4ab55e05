package bus

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/halfcarry/gbcore/addr"
	"github.com/halfcarry/gbcore/cartridge"
	"github.com/halfcarry/gbcore/corelog"
	"github.com/halfcarry/gbcore/scheduler"
	"github.com/halfcarry/gbcore/timer"
)

func newTestBus(t *testing.T) (*Bus, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := corelog.New(corelog.Config{
		Logger:      slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.Level(corelog.LevelTrace)})),
		MinLevel:    corelog.LevelTrace,
		ChannelMask: ^uint32(0),
	})

	sched := scheduler.New()
	b := New(sched, logger)
	tm := timer.New(sched, func() { b.RequestInterrupt(addr.TimerInterrupt) })
	b.SetTimer(tm)

	data := make([]byte, 0x200)
	var sum int
	for i := 0x134; i <= 0x14C; i++ {
		sum += int(data[i])
	}
	data[0x14D] = uint8(-(sum + 25))
	cart, err := cartridge.New(data)
	if err != nil {
		t.Fatalf("failed to build test cartridge: %v", err)
	}
	b.SetCartridge(cart)

	return b, &buf
}

func TestReadAdvancesSchedulerByFour(t *testing.T) {
	b, _ := newTestBus(t)
	before := b.sched.CurrentTS()
	b.Read(0xC000)
	if b.sched.CurrentTS()-before != 4 {
		t.Fatalf("Read advanced scheduler by %d ticks, want 4", b.sched.CurrentTS()-before)
	}
}

func TestWriteAdvancesSchedulerByFour(t *testing.T) {
	b, _ := newTestBus(t)
	before := b.sched.CurrentTS()
	b.Write(0xC000, 0x42)
	if b.sched.CurrentTS()-before != 4 {
		t.Fatalf("Write advanced scheduler by %d ticks, want 4", b.sched.CurrentTS()-before)
	}
}

func TestPeekDoesNotAdvanceScheduler(t *testing.T) {
	b, _ := newTestBus(t)
	before := b.sched.CurrentTS()
	b.Peek(0xC000)
	if b.sched.CurrentTS() != before {
		t.Fatalf("Peek advanced the scheduler, was %d now %d", before, b.sched.CurrentTS())
	}
}

func TestWRAMEchoMirrorsWRAM(t *testing.T) {
	b, _ := newTestBus(t)
	b.Write(0xC010, 0xAB)
	if got := b.Read(0xE010); got != 0xAB {
		t.Fatalf("echo region read = 0x%02X, want 0xAB", got)
	}
}

func TestUnmappedReadReturnsFFAndWarns(t *testing.T) {
	b, buf := newTestBus(t)
	if got := b.Read(0xFF40); got != 0xFF {
		t.Fatalf("unmapped read = 0x%02X, want 0xFF", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("unmapped")) {
		t.Fatalf("expected a warning log for the unmapped read, got: %s", buf.String())
	}
}

func TestUnmappedWriteIsDiscardedAndWarns(t *testing.T) {
	b, buf := newTestBus(t)
	b.Write(0xFF40, 0x99)
	if !bytes.Contains(buf.Bytes(), []byte("unmapped")) {
		t.Fatalf("expected a warning log for the unmapped write, got: %s", buf.String())
	}
}

func TestLCDStubAlwaysReadsFF(t *testing.T) {
	b, _ := newTestBus(t)
	if got := b.Read(addr.LY); got != 0xFF {
		t.Fatalf("LY stub read = 0x%02X, want 0xFF", got)
	}
}

func TestSerialLineBufferedUntilNewline(t *testing.T) {
	b, buf := newTestBus(t)
	for _, c := range []byte("hi\n") {
		b.Write(addr.SB, c)
	}
	if !bytes.Contains(buf.Bytes(), []byte("hi")) {
		t.Fatalf("expected the buffered serial line to be logged, got: %s", buf.String())
	}
}

func TestIFWriteIsVerbatim(t *testing.T) {
	b, _ := newTestBus(t)
	b.Write(addr.IF, 0x1F)
	if got := b.Read(addr.IF); got != 0x1F {
		t.Fatalf("IF read = 0x%02X, want 0x1F", got)
	}
}

func TestRequestInterruptSetsIFBit(t *testing.T) {
	b, _ := newTestBus(t)
	b.RequestInterrupt(addr.TimerInterrupt)
	if got := b.Read(addr.IF); got&uint8(addr.TimerInterrupt) == 0 {
		t.Fatalf("IF = 0x%02X, want timer bit set", got)
	}
}
