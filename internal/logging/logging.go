// Package logging builds the zap loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLogPath is the fixed path for TUI debug logs.
const DebugLogPath = "moments-debug.log"

// Options selects where logs go.
type Options struct {
	Debug   bool   // without Debug a no-op logger is returned
	Path    string // JSON lines to this file; empty means console on stderr
	Console bool   // human-readable console encoder on stderr
}

// New returns a logger for opts. The caller should Sync it before exit.
func New(opts Options) (*zap.Logger, error) {
	if !opts.Debug {
		return zap.NewNop(), nil
	}

	if opts.Path != "" && !opts.Console {
		return newFileLogger(opts.Path)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building console logger: %w", err)
	}
	return logger, nil
}

// newFileLogger truncates path and writes JSON lines to it. The alt screen
// owns the terminal while the TUI runs, so nothing goes to stderr.
func newFileLogger(path string) (*zap.Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), zapcore.DebugLevel)

	logger := zap.New(core, zap.ErrorOutput(zapcore.AddSync(f)))
	logger.Debug("debug log started", zap.String("log_file", path))
	return logger, nil
}
