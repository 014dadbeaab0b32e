// Package toast implements the in-process queue of short-lived, user-facing
// status messages ("toasts"). A Manager owns the live list, schedules one
// expiry timer per toast, and notifies observers after every change.
//
// Toasts are volatile. Nothing is persisted and ids restart with the process.
package toast

import "time"

// DefaultDuration is how long a toast stays live when the caller does not
// ask for a specific duration.
const DefaultDuration = 3500 * time.Millisecond

// Kind labels a toast. Unknown kinds are accepted and rendered with the
// info icon.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is a single live toast.
type Notification struct {
	ID        int64
	Kind      Kind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// Option customizes a single Push.
type Option func(*pushOptions)

type pushOptions struct {
	duration time.Duration
}

// WithDuration overrides the display duration. Non-positive values fall back
// to the manager default.
func WithDuration(d time.Duration) Option {
	return func(o *pushOptions) {
		o.duration = d
	}
}

// ChangeType describes why the live list changed.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeExpired ChangeType = "expired"
	ChangeEvicted ChangeType = "evicted"
)

// Change is delivered to observers after each mutation. Live is a copy of
// the list as it stood right after the change.
type Change struct {
	Type         ChangeType
	Notification Notification
	Live         []Notification
}

// Observer is invoked synchronously after every change, one change at a
// time and in mutation order. Observers must not block and must not call
// mutating Manager methods; reading via List is fine.
type Observer func(Change)
