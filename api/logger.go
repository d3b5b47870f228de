package api

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// retryLogger routes go-retryablehttp's leveled output through zerolog.
type retryLogger struct{}

var _ retryablehttp.LeveledLogger = retryLogger{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	event(log.Error(), keysAndValues).Msg(msg)
}

func (retryLogger) Info(msg string, keysAndValues ...interface{}) {
	event(log.Debug(), keysAndValues).Msg(msg)
}

func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	event(log.Trace(), keysAndValues).Msg(msg)
}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	event(log.Warn(), keysAndValues).Msg(msg)
}

func event(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	return e.Str("component", "api").Fields(keysAndValues)
}
