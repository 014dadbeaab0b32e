package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("toast")
	logger.Info().Int64("id", 3).Msg("toast pushed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "toast", entry[ComponentKey])
	assert.Equal(t, "toast pushed", entry["message"])
	assert.InDelta(t, 3, entry["id"], 0)
}

func TestComponent_UsesLoggerAtCallTime(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var early, late bytes.Buffer
	log.Logger = zerolog.New(&early)
	before := Component("api")

	log.Logger = zerolog.New(&late)
	before.Info().Msg("still early")

	assert.Contains(t, early.String(), "still early")
	assert.Empty(t, late.String())
}
