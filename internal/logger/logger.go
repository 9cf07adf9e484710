// sentiric-numbering-service/internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New, serviceName, env ve logLevel'e göre yeni bir zerolog.Logger oluşturur.
// 'development' ortamında renkli konsol çıktısı, diğerlerinde JSON çıktısı verir.
func New(serviceName, env, logLevel string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, serviceName, logLevel)
}

// NewWithWriter, çıktıyı verilen writer'a yazan bir logger döndürür.
func NewWithWriter(w io.Writer, serviceName, logLevel string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		logger.Warn().Str("log_level", logLevel).Msg("Geçersiz LOG_LEVEL, varsayılan olarak 'info' kullanılıyor.")
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}
