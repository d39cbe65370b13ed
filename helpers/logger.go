package helpers

import (
	"github.com/capitalsuccesshub-maker/property-scout/logger"
)

// LoggerInterface defines the interface for run-level logging
type LoggerInterface interface {
	LogError(stage string, err error)
	LogInfo(format string, args ...interface{})
}

// RunLogger adapts the structured logger for the worker
type RunLogger struct {
	log *logger.Logger
}

// NewRunLogger creates a new run logger instance
func NewRunLogger(log *logger.Logger) *RunLogger {
	return &RunLogger{log: log}
}

// LogError logs an error with the stage it occurred in
func (l *RunLogger) LogError(stage string, err error) {
	l.log.Error().Str("stage", stage).Err(err).Msg("stage failed")
}

// LogInfo logs an informational message
func (l *RunLogger) LogInfo(format string, args ...interface{}) {
	l.log.Info().Msgf(format, args...)
}
