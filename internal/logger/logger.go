package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New はJSONをstderrへ出すサービス共通のloggerを作る。
func New(service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
