package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies username and post_id from the event context into the
// log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if username := GetUsername(ctx); username != "" {
		e.Str("username", username)
	}

	if id, ok := GetPostID(ctx); ok {
		e.Int64("post_id", id)
	}
}
