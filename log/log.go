// Package log builds zap loggers for the application and its components.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

const (
	// ConsoleEncoder writes human readable logs.
	ConsoleEncoder = "console"
	// JSONEncoder writes logs as json objects.
	JSONEncoder = "json"
)

// DefaultLevel is the level of modules that have no level configured.
func DefaultLevel() zapcore.Level {
	return zapcore.InfoLevel
}

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	consoleSyncer := zapcore.AddSync(logWriter)
	core := zapcore.NewCore(encoder, consoleSyncer, level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// Encoder returns encoder by name. Unknown names fall back to the console encoder.
func Encoder(name string) zapcore.Encoder {
	if name == JSONEncoder {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}

// Module returns named logger that writes entries enabled by level.
// The parent core must be enabled for the level as well.
func Module(logger *zap.Logger, name string, level zapcore.LevelEnabler) *zap.Logger {
	return logger.Named(name).WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, level: level}
	}))
}

type levelCore struct {
	zapcore.Core
	level zapcore.LevelEnabler
}

func (c *levelCore) Enabled(lvl zapcore.Level) bool {
	return c.level.Enabled(lvl) && c.Core.Enabled(lvl)
}

func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c *levelCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}
