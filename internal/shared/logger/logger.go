package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/myphoto-inc/myphoto/internal/shared/config"
)

var (
	mu      sync.Mutex
	process *slog.Logger
	level   = new(slog.LevelVar)
)

// Init installs the process-wide logger. In debug mode every level carries a
// source location; otherwise only warn and error do.
func Init(cfg *config.LoggerConfig, mode string) error {
	writer, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	level.Set(ParseLevel(cfg.Level))

	sourceLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if mode == "debug" {
		sourceLevels = append(sourceLevels, slog.LevelDebug, slog.LevelInfo)
	}

	install(slog.New(NewConditionalSourceHandler(newBaseHandler(writer, cfg.Format), sourceLevels...)))
	return nil
}

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

func openOutput(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %s: %w", path, err)
	}
	return file, nil
}

// newBaseHandler is JSON for "json" and tint console output otherwise.
// Colour is only used on terminals.
func newBaseHandler(w io.Writer, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.DateTime,
		NoColor:     !isTerminal(w),
		ReplaceAttr: tintErrors,
	})
}

func install(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	process = l
	slog.SetDefault(l)
}

// tintErrors renders "error" attributes in tint's error colour.
func tintErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

// Get returns the process logger, falling back to console output at info
// level when Init has not run.
func Get() *slog.Logger {
	mu.Lock()
	l := process
	mu.Unlock()
	if l != nil {
		return l
	}

	l = slog.New(NewConditionalSourceHandler(newBaseHandler(os.Stdout, "console"), slog.LevelWarn, slog.LevelError))
	install(l)
	return l
}
