package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestResolveLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, resolveLevel(""))
	assert.Equal(t, zerolog.DebugLevel, resolveLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, resolveLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, resolveLevel("loud"))
}

func TestInit_HonorsLogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Init("production")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	t.Setenv("LOG_LEVEL", "")
	Init("production")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
