package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig selects level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// InitLogger builds the process logger and installs it as the zerolog global.
func InitLogger(app string, cfg LogConfig) zerolog.Logger {
	logger := NewLogger(os.Stdout, app, cfg)
	log.Logger = logger
	return logger
}

// NewLogger builds a logger writing to out. Format "console" gives human readable output, anything else JSON.
func NewLogger(out io.Writer, app string, cfg LogConfig) zerolog.Logger {
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}
