package logging

import "context"

type contextKey string

const (
	usernameKey contextKey = "username"
	postIDKey   contextKey = "post_id"
)

// WithUsername records the logged-in user for log events carrying ctx.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// WithPostID records the post an operation acts on.
func WithPostID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, postIDKey, id)
}

// GetUsername returns the username from ctx, or "".
func GetUsername(ctx context.Context) string {
	if u, ok := ctx.Value(usernameKey).(string); ok {
		return u
	}
	return ""
}

// GetPostID returns the post id from ctx and whether one was set.
func GetPostID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(postIDKey).(int64)
	return id, ok
}
