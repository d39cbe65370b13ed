package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	testCases := []struct {
		level       string
		environment string
		expected    zerolog.Level
	}{
		{"", "development", zerolog.DebugLevel},
		{"", "production", zerolog.InfoLevel},
		{"warn", "development", zerolog.WarnLevel},
		{"error", "production", zerolog.ErrorLevel},
		{"nonsense", "development", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, getLevel(tc.level, tc.environment))
	}
}

func TestNew(t *testing.T) {
	log := New("development", "")
	assert.NotNil(t, log)
	assert.True(t, log.IsDebugEnabled())

	log = New("production", "")
	assert.False(t, log.IsDebugEnabled())
}

func TestForComponent(t *testing.T) {
	log := New("development", "info")
	child := log.ForComponent("fetcher")
	assert.NotNil(t, child)
	// The parent logger is not mutated
	assert.NotSame(t, log, child)
}
