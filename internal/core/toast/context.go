package toast

import "context"

type contextKey string

const managerKey contextKey = "toast_manager"

// WithManager returns a context carrying m. Install it once at startup,
// before any command or view runs.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey, m)
}

// Lookup returns the manager installed in ctx, if any.
func Lookup(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerKey).(*Manager)
	return m, ok && m != nil
}

// FromContext returns the manager installed in ctx. It panics when none is
// installed: reporting a status message without a manager is a wiring bug.
func FromContext(ctx context.Context) *Manager {
	m, ok := Lookup(ctx)
	if !ok {
		panic("toast: no Manager in context; install one with toast.WithManager")
	}
	return m
}
