package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects the level, output format and optional log file.
type Config struct {
	Level  string
	Format string
	// File, when set, receives JSON lines in addition to the primary output.
	File string
}

// New builds a logger writing to out. The returned close function releases the
// log file, if one was opened, and is safe to call when none was.
func New(cfg Config, out io.Writer) (zerolog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), noopClose, err
	}

	var primary io.Writer
	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		primary = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case FormatJSON:
		primary = out
	default:
		return zerolog.Nop(), noopClose, fmt.Errorf("unknown log format %q (expected %s or %s)", cfg.Format, FormatConsole, FormatJSON)
	}

	closeFn := noopClose
	writer := primary
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), noopClose, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), noopClose, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		writer = zerolog.MultiLevelWriter(primary, file)
		closeFn = file.Close
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger, closeFn, nil
}

func noopClose() error { return nil }

// ParseLevel accepts zerolog level names; an empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
}
