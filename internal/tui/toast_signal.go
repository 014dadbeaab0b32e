package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/magazine/internal/core/toast"
)

// toastsChangedMsg tells the Update loop to re-render the toast stack.
type toastsChangedMsg struct{}

// ToastSignal bridges toast.Manager observers, which may run on timer
// goroutines, into the Bubble Tea loop. Bursts of changes coalesce into a
// single pending signal and Observe never blocks.
type ToastSignal struct {
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewToastSignal() *ToastSignal {
	return &ToastSignal{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Observe is a toast.Observer.
func (s *ToastSignal) Observe(toast.Change) {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// Wait blocks until the toast list changed. It returns nil once Stop has
// been called.
func (s *ToastSignal) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.signal:
			return toastsChangedMsg{}
		case <-s.done:
			return nil
		}
	}
}

// Stop releases any pending Wait.
func (s *ToastSignal) Stop() {
	s.once.Do(func() { close(s.done) })
}
