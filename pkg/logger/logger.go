package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Pretty     bool
	TimeFormat string
	Output     io.Writer
}

// Logger wraps zerolog.Logger
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger; nil config gives info-level console output.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{Level: "info", Pretty: true}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: cfg.TimeFormat}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// WithFields returns a child logger carrying the given fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *Logger) Zerolog() *zerolog.Logger { return &l.zl }

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }

func (l *Logger) Info(msg string) { l.zl.Info().Msg(msg) }

func (l *Logger) Warn(msg string) { l.zl.Warn().Msg(msg) }

func (l *Logger) Error(err error, msg string) { l.zl.Error().Err(err).Msg(msg) }

func (l *Logger) Fatal(err error, msg string) { l.zl.Fatal().Err(err).Msg(msg) }
