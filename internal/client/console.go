package client

import (
	"fmt"
	"io"
	"sync"

	"github.com/colonyops/magazine/internal/core/toast"
)

// Renderer formats a toast for terminal output.
type Renderer func(toast.Notification) string

// ConsoleReporter prints every newly pushed toast to w. It is the toast
// surface for one-shot commands, where nothing stays on screen long enough
// for expiry to matter.
type ConsoleReporter struct {
	w      io.Writer
	render Renderer

	mu    sync.Mutex
	muted bool
}

func NewConsoleReporter(w io.Writer, render Renderer) *ConsoleReporter {
	return &ConsoleReporter{w: w, render: render}
}

// Observe is a toast.Observer.
func (r *ConsoleReporter) Observe(c toast.Change) {
	if c.Type != toast.ChangeAdded {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.muted {
		return
	}
	_, _ = fmt.Fprintln(r.w, r.render(c.Notification))
}

// Mute silences the reporter until the returned func is called. The TUI
// uses it while it owns the screen.
func (r *ConsoleReporter) Mute() (restore func()) {
	r.mu.Lock()
	r.muted = true
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		r.muted = false
		r.mu.Unlock()
	}
}
