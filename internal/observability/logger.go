package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger builds the daemon logger and installs it as the global:
// console output, RFC3339 timestamps, and the service/node identity every
// cabinet log line carries.
func InitLogger(app, node string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().
		Timestamp().
		Str("app", app).
		Str("node", node).
		Logger()
	log.Logger = logger
	return logger
}
