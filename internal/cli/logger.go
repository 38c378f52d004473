package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/mrmchughes/home-energy-analysis-tool/internal/config"
)

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// newLogger logs text to stderr and, if a log file is configured, JSON to the file.
// The returned close function must be called to close the log file.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: level,
		}),
	}
	closeFn := func() error { return nil }

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		// The file gets everything, stderr stays readable
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		closeFn = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
