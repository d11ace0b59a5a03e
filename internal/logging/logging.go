// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select where logs go.
type Options struct {
	// Path is the log file. Empty logs to stderr only.
	Path    string
	Verbose bool
	// Stderr also mirrors logs to stderr. The TUI must leave this off.
	Stderr bool
}

// New returns a production JSON logger. Timestamps are ISO-8601 so the activity view
// can show them without conversion.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var outputs []string
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		outputs = append(outputs, opts.Path)
	}
	if opts.Stderr || len(outputs) == 0 {
		outputs = append(outputs, "stderr")
	}
	config.OutputPaths = outputs
	config.ErrorOutputPaths = outputs

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
