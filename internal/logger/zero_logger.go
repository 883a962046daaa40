package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// ZeroLogger implements Logger on top of a private zerolog instance, so
// two loggers with different sinks never share state.
type ZeroLogger struct {
	zl    zerolog.Logger
	level Level
}

// NewZeroLogger returns a zerolog-backed logger writing to w with the
// given minimum level and default fields attached to every entry.
func NewZeroLogger(w io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	props := make(map[string]interface{}, len(defaultFields))
	for k, v := range defaultFields {
		props[k] = v
	}

	zl := zerolog.New(w).With().Fields(props).Timestamp().Logger().Level(toZerologLevel(level))
	return &ZeroLogger{zl: zl, level: level}
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelOff:
		return zerolog.Disabled
	case LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) Info(message string, properties map[string]interface{}) {
	l.zl.Info().Fields(properties).Msg(message)
}

func (l *ZeroLogger) Error(err error, properties map[string]interface{}) {
	l.zl.Error().Fields(properties).Err(err).Msg(err.Error())
}

// Fatal writes the entry and stops the process.
func (l *ZeroLogger) Fatal(err error, properties map[string]interface{}) {
	l.zl.Fatal().Fields(properties).Err(err).Msg(err.Error())
}

func (l *ZeroLogger) Debug(message string, properties map[string]interface{}) {
	l.zl.Debug().Fields(properties).Msg(message)
}

func (l *ZeroLogger) SetLevel(level Level) {
	l.level = level
	l.zl = l.zl.Level(toZerologLevel(level))
}
