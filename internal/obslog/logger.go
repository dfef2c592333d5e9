// Package obslog provides the structured logger used across the moonshot
// daemon and library packages: a small wrapper around log/slog offering a
// package-level default logger plus named component loggers, following the
// same Config/Init shape the rest of the pack's services use for their
// logging setup.
package obslog

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Config controls the process-wide logger.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	currentLevel  atomic.Int32
	currentFormat atomic.Value

	mu      sync.RWMutex
	handler slog.Handler
	root    *slog.Logger
	output  *os.File = os.Stderr
)

func init() {
	currentLevel.Store(int32(slog.LevelInfo))
	currentFormat.Store("text")
	reconfigure()
}

func reconfigure() {
	mu.Lock()
	defer mu.Unlock()

	format, _ := currentFormat.Load().(string)
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.Level(currentLevel.Load()))

	opts := &slog.HandlerOptions{Level: levelVar}

	if format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	root = slog.New(handler)
}

// Init applies cfg to the process-wide logger. It is safe to call more
// than once; later calls replace the active handler.
func Init(cfg Config) error {
	mu.Lock()
	newOutput := output
	if cfg.Output != "" {
		switch strings.ToLower(cfg.Output) {
		case "stdout":
			newOutput = os.Stdout
		case "stderr", "":
			newOutput = os.Stderr
		default:
			f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				mu.Unlock()
				return err
			}
			newOutput = f
		}
	}
	output = newOutput
	mu.Unlock()

	if cfg.Level != "" {
		currentLevel.Store(int32(parseLevel(cfg.Level)))
	}
	if cfg.Format != "" {
		currentFormat.Store(strings.ToLower(cfg.Format))
	}

	reconfigure()
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// For returns a named component logger (e.g. "eap.dispatcher",
// "eap.radsec"), tagging every record with a "component" attribute.
func For(component string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With("component", component)
}

// Default returns the process-wide root logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}
