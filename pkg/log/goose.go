package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger reports schema migrations through the app logger, tagged
// component=migrations.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLogger(l *zerolog.Logger) *GooseLogger {
	return &GooseLogger{
		logger: l.With().Str("component", "migrations").Logger(),
	}
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return NewGooseLogger(FromCtx(ctx))
}

// Printf logs migration progress at debug level. goose ends its lines with
// a newline; it is dropped so console output stays on one line.
func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Debug().Msg(trimLine(format, v...))
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msg(trimLine(format, v...))
}

func trimLine(format string, v ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, v...), "\n")
}
