package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the sink and verbosity of a logger.
type Options struct {
	Debug bool
	// Path is a log file. Empty means stderr.
	Path string
}

// New builds a console-encoded zap logger. Only warnings and errors are
// written unless Debug is set.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.Sampling = nil
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if opts.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	out := "stderr"
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		out = opts.Path
	}
	config.OutputPaths = []string{out}
	config.ErrorOutputPaths = []string{out}

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

// ForTUI returns a file logger when debug is on and a no-op logger
// otherwise; a full-screen program can't share the terminal with log lines.
func ForTUI(debug bool, path string) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return New(Options{Debug: true, Path: path})
}
