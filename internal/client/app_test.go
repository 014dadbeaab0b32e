package client

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/magazine/internal/core/config"
)

func TestNewApp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Toast.DefaultDuration = 2 * time.Second

	a := NewApp(&cfg)
	t.Cleanup(a.Close)

	require.NotNil(t, a.API)
	require.NotNil(t, a.Toasts)
	assert.False(t, a.Credentials.LoggedIn())

	id := a.Toasts.Info("hello")
	require.Len(t, a.Toasts.List(), 1)
	assert.Equal(t, id, a.Toasts.List()[0].ID)
	assert.Equal(t, 2*time.Second, a.Toasts.List()[0].Duration)
}

func TestApp_CloseIdempotent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	a := NewApp(&cfg)
	a.Toasts.Info("pending")
	a.Close()
	a.Close()

	assert.Zero(t, a.Toasts.Len())
	assert.Zero(t, a.Toasts.Info("late"))
}

func TestApp_ReportToConsole(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	a := NewApp(&cfg)
	t.Cleanup(a.Close)

	restore := a.SilenceConsole()
	restore()

	var buf bytes.Buffer
	a.ReportToConsole(&buf, plain)

	a.Toasts.Success("Posted")

	restore = a.SilenceConsole()
	a.Toasts.Info("while the tui runs")
	restore()

	assert.Equal(t, "success: Posted\n", buf.String())
}
