package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/magazine/internal/core/toast"
)

func TestToastSignal_WaitBufferedSignal(t *testing.T) {
	s := NewToastSignal()
	s.Observe(toast.Change{Type: toast.ChangeAdded})

	msg := s.Wait()()
	_, ok := msg.(toastsChangedMsg)
	require.True(t, ok)
}

func TestToastSignal_BurstCoalesces(t *testing.T) {
	s := NewToastSignal()
	for range 10 {
		s.Observe(toast.Change{Type: toast.ChangeAdded})
	}

	_, ok := s.Wait()().(toastsChangedMsg)
	require.True(t, ok)

	s.Stop()
	assert.Nil(t, s.Wait()(), "no second signal should be pending")
}

func TestToastSignal_ObserveNeverBlocks(t *testing.T) {
	s := NewToastSignal()

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for range 200 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Observe(toast.Change{Type: toast.ChangeExpired})
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Observe blocked")
	}
}

func TestToastSignal_StopReleasesWait(t *testing.T) {
	s := NewToastSignal()

	got := make(chan any, 1)
	go func() { got <- s.Wait()() }()

	s.Stop()
	s.Stop()

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Stop")
	}
}

func TestToastSignal_WiredToManager(t *testing.T) {
	m, clock := newTestToasts(t)
	s := NewToastSignal()
	m.Subscribe(s.Observe)

	m.Info("hello")
	_, ok := s.Wait()().(toastsChangedMsg)
	require.True(t, ok)

	clock.Advance(toast.DefaultDuration)
	_, ok = s.Wait()().(toastsChangedMsg)
	require.True(t, ok)
}
