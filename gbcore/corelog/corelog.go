// Package corelog is the logging surface every gbcore component reports
// through. It wraps log/slog rather than replacing it: the library owns a
// *slog.Logger and a small per-channel enable mask so a host can silence
// noisy channels (serial traffic, bus anomalies) without losing the rest.
package corelog

import (
	"context"
	"log/slog"
	"os"
)

// Channel identifies which subsystem produced a log record.
type Channel uint8

const (
	Ctx Channel = iota
	Bus
	CPU
	Cart
	Disasm
	numChannels
)

func (c Channel) String() string {
	switch c {
	case Ctx:
		return "ctx"
	case Bus:
		return "bus"
	case CPU:
		return "cpu"
	case Cart:
		return "cart"
	case Disasm:
		return "disasm"
	default:
		return "unknown"
	}
}

// Level mirrors slog.Level but adds the TRACE rung the reference logger
// exposes for the serial hello-world scenario (spec.md section 8).
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelErr   Level = 8
)

func (l Level) slogLevel() slog.Level {
	return slog.Level(l)
}

// Config is the logger configuration a host passes to NewContext. The zero
// value is not usable; call Default() for a sane starting point.
type Config struct {
	Logger       *slog.Logger
	MinLevel     Level
	ChannelMask  uint32 // bit i set => Channel(i) is enabled
	UserData     any
}

// Default builds a Config that logs everything at INFO and above to stderr
// through a slog.TextHandler, matching the teacher's own default CLI setup.
func Default() Config {
	return Config{
		Logger:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
		MinLevel:    LevelInfo,
		ChannelMask: ^uint32(0),
	}
}

// Logger is the per-component handle into a Config: every package holds one
// of these rather than the raw Config, and each call site names its
// channel, e.g. "l.Warn(Bus, ...)".
type Logger struct {
	cfg Config
}

// New wraps cfg for use by gbcore components.
func New(cfg Config) *Logger {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Logger{cfg: cfg}
}

func (l *Logger) enabled(ch Channel, level Level) bool {
	if level < l.cfg.MinLevel {
		return false
	}
	return l.cfg.ChannelMask&(1<<uint(ch)) != 0
}

func (l *Logger) log(ch Channel, level Level, msg string, args ...any) {
	if !l.enabled(ch, level) {
		return
	}
	args = append(args, "channel", ch.String())
	l.cfg.Logger.Log(context.Background(), level.slogLevel(), msg, args...)
}

func (l *Logger) Trace(ch Channel, msg string, args ...any) { l.log(ch, LevelTrace, msg, args...) }
func (l *Logger) Debug(ch Channel, msg string, args ...any) { l.log(ch, LevelDebug, msg, args...) }
func (l *Logger) Info(ch Channel, msg string, args ...any)  { l.log(ch, LevelInfo, msg, args...) }
func (l *Logger) Warn(ch Channel, msg string, args ...any)  { l.log(ch, LevelWarn, msg, args...) }

// Err logs at ERR level. Per the error-handling design, the core never
// terminates the process itself; a host that wants ERR to be fatal does so
// in its own Logger.Logger handler (slog.Handler.Handle), e.g. by calling
// os.Exit after seeing an ERR record.
func (l *Logger) Err(ch Channel, msg string, args ...any) { l.log(ch, LevelErr, msg, args...) }
