package logger

import (
	"io"
	"os"

	"notes-app/internal/config"

	"github.com/rs/zerolog"
)

// New создает zerolog логгер по настройкам из конфигурации.
// Неизвестный или пустой уровень трактуется как info.
func New(cfg *config.ConfigLogger) zerolog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter создает логгер, пишущий в w
func NewWithWriter(w io.Writer, cfg *config.ConfigLogger) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	console := false
	if cfg != nil {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && cfg.Level != "" {
			level = parsed
		}
		console = cfg.Console
	}

	// ConsoleWriter для локальной разработки
	if console {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}
