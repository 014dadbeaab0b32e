package toast

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/magazine/internal/core/logging"
)

// lastID is shared by every Manager in the process so ids are never reused,
// even across managers.
var lastID atomic.Int64

func nextID() int64 {
	return lastID.Add(1)
}

// Config configures a Manager. The zero value is usable.
type Config struct {
	// Clock defaults to SystemClock.
	Clock Clock
	// DefaultDuration defaults to DefaultDuration.
	DefaultDuration time.Duration
	// MaxVisible caps the live list; the oldest toasts are evicted first.
	// Zero means unbounded.
	MaxVisible int
}

type observerEntry struct {
	id int
	fn Observer
}

// Manager owns the live toast list and one expiry timer per live toast.
//
// All methods are safe for concurrent use. Expiry callbacks run on timer
// goroutines and are serialized with Push and Remove by mu; a callback that
// loses a race with Remove or Close finds its id gone and does nothing.
type Manager struct {
	mu    sync.Mutex
	queue []Notification
	// timers holds the pending expiry handle for every live id.
	timers map[int64]Timer
	closed bool

	observers []observerEntry
	nextObs   int
	// issued counts deliveries handed out under mu.
	issued uint64

	// Deliveries run in ticket order without holding mu, so observers may
	// call List.
	emitMu    sync.Mutex
	emitCond  *sync.Cond
	delivered uint64

	clock           Clock
	defaultDuration time.Duration
	maxVisible      int
	logger          zerolog.Logger
}

// New creates a Manager. Call Close when the hosting view goes away.
func New(cfg Config) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = DefaultDuration
	}
	if cfg.MaxVisible < 0 {
		cfg.MaxVisible = 0
	}

	m := &Manager{
		timers:          make(map[int64]Timer),
		clock:           cfg.Clock,
		defaultDuration: cfg.DefaultDuration,
		maxVisible:      cfg.MaxVisible,
		logger:          logging.Component("toast"),
	}
	m.emitCond = sync.NewCond(&m.emitMu)
	return m
}

// Push appends a toast and schedules its removal. It returns the new id, or
// 0 if the manager has already been closed.
func (m *Manager) Push(kind Kind, message string, opts ...Option) int64 {
	o := pushOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.duration <= 0 {
		o.duration = m.defaultDuration
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.logger.Debug().Str("kind", string(kind)).Msg("push after close ignored")
		return 0
	}

	n := Notification{
		ID:        nextID(),
		Kind:      kind,
		Message:   message,
		CreatedAt: m.clock.Now(),
		Duration:  o.duration,
	}
	m.queue = append(m.queue, n)

	id := n.ID
	m.timers[id] = m.clock.AfterFunc(o.duration, func() {
		m.expire(id)
	})

	changes := []Change{{Type: ChangeAdded, Notification: n, Live: m.snapshotLocked()}}

	if m.maxVisible > 0 {
		for len(m.queue) > m.maxVisible {
			evicted := m.deleteAtLocked(0)
			changes = append(changes, Change{Type: ChangeEvicted, Notification: evicted, Live: m.snapshotLocked()})
		}
	}

	m.logger.Debug().
		Int64("id", id).
		Str("kind", string(kind)).
		Dur("duration", o.duration).
		Msg("toast pushed")

	m.emitAndUnlock(changes)
	return id
}

// Success pushes a success toast.
func (m *Manager) Success(message string, opts ...Option) int64 {
	return m.Push(KindSuccess, message, opts...)
}

// Error pushes an error toast.
func (m *Manager) Error(message string, opts ...Option) int64 {
	return m.Push(KindError, message, opts...)
}

// Info pushes an info toast.
func (m *Manager) Info(message string, opts ...Option) int64 {
	return m.Push(KindInfo, message, opts...)
}

// Remove deletes the toast with the given id and stops its timer. Unknown or
// already removed ids are ignored.
func (m *Manager) Remove(id int64) {
	m.mu.Lock()
	idx := m.indexLocked(id)
	if m.closed || idx < 0 {
		m.mu.Unlock()
		return
	}

	n := m.deleteAtLocked(idx)
	m.logger.Debug().Int64("id", id).Msg("toast removed")
	m.emitAndUnlock([]Change{{Type: ChangeRemoved, Notification: n, Live: m.snapshotLocked()}})
}

// DismissNewest removes the most recently pushed live toast, if any.
func (m *Manager) DismissNewest() {
	m.mu.Lock()
	if m.closed || len(m.queue) == 0 {
		m.mu.Unlock()
		return
	}

	n := m.deleteAtLocked(len(m.queue) - 1)
	m.emitAndUnlock([]Change{{Type: ChangeRemoved, Notification: n, Live: m.snapshotLocked()}})
}

// Clear removes every live toast, oldest first.
func (m *Manager) Clear() {
	m.mu.Lock()
	if m.closed || len(m.queue) == 0 {
		m.mu.Unlock()
		return
	}

	changes := make([]Change, 0, len(m.queue))
	for len(m.queue) > 0 {
		n := m.deleteAtLocked(0)
		changes = append(changes, Change{Type: ChangeRemoved, Notification: n, Live: m.snapshotLocked()})
	}
	m.emitAndUnlock(changes)
}

// List returns a copy of the live toasts, oldest first.
func (m *Manager) List() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Len returns the number of live toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Subscribe registers fn for every subsequent change. The returned func
// unregisters it.
func (m *Manager) Subscribe(fn Observer) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return func() {}
	}

	m.nextObs++
	id := m.nextObs
	m.observers = append(m.observers, observerEntry{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

// Close stops every outstanding timer and drops the live list and all
// observers. It waits for an in-flight observer delivery to finish, so once
// Close returns no observer is invoked again. Close must not be called from
// an observer.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true

	stopped := 0
	for id, t := range m.timers {
		if t.Stop() {
			stopped++
		}
		delete(m.timers, id)
	}
	m.queue = nil
	m.observers = nil
	last := m.issued
	m.mu.Unlock()

	m.emitMu.Lock()
	for m.delivered < last {
		m.emitCond.Wait()
	}
	m.emitMu.Unlock()

	m.logger.Debug().Int("timers_stopped", stopped).Msg("toast manager closed")
}

// expire is the timer callback for id.
func (m *Manager) expire(id int64) {
	m.mu.Lock()
	idx := m.indexLocked(id)
	if m.closed || idx < 0 {
		m.mu.Unlock()
		return
	}

	// The timer that called us has fired; nothing left to stop.
	delete(m.timers, id)
	n := m.queue[idx]
	m.queue = append(m.queue[:idx], m.queue[idx+1:]...)

	m.logger.Debug().Int64("id", id).Msg("toast expired")
	m.emitAndUnlock([]Change{{Type: ChangeExpired, Notification: n, Live: m.snapshotLocked()}})
}

// deleteAtLocked removes the entry at idx and stops its timer.
func (m *Manager) deleteAtLocked(idx int) Notification {
	n := m.queue[idx]
	m.queue = append(m.queue[:idx], m.queue[idx+1:]...)

	if t, ok := m.timers[n.ID]; ok {
		t.Stop()
		delete(m.timers, n.ID)
	}
	return n
}

func (m *Manager) indexLocked(id int64) int {
	for i, n := range m.queue {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshotLocked() []Notification {
	out := make([]Notification, len(m.queue))
	copy(out, m.queue)
	return out
}

// emitAndUnlock delivers changes to the current observers. It must be
// called with mu held and releases it.
func (m *Manager) emitAndUnlock(changes []Change) {
	if len(m.observers) == 0 {
		m.mu.Unlock()
		return
	}

	obs := make([]Observer, len(m.observers))
	for i, o := range m.observers {
		obs[i] = o.fn
	}
	m.issued++
	ticket := m.issued
	m.mu.Unlock()

	m.emitMu.Lock()
	defer m.emitMu.Unlock()
	for m.delivered != ticket-1 {
		m.emitCond.Wait()
	}

	// Advance even if an observer panics, or later deliveries and Close
	// would wait on this ticket forever.
	defer func() {
		m.delivered = ticket
		m.emitCond.Broadcast()
	}()

	for _, c := range changes {
		for _, fn := range obs {
			fn(c)
		}
	}
}
