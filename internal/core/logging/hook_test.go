package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logWithHook(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Ctx(ctx).Msg("request complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		want    map[string]any
		missing []string
	}{
		{
			name: "username and post_id",
			ctx:  WithPostID(WithUsername(context.Background(), "ada"), 7),
			want: map[string]any{"username": "ada", "post_id": float64(7)},
		},
		{
			name:    "only username",
			ctx:     WithUsername(context.Background(), "ada"),
			want:    map[string]any{"username": "ada"},
			missing: []string{"post_id"},
		},
		{
			name:    "only post_id",
			ctx:     WithPostID(context.Background(), 7),
			want:    map[string]any{"post_id": float64(7)},
			missing: []string{"username"},
		},
		{
			name:    "background context",
			ctx:     context.Background(),
			missing: []string{"username", "post_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := logWithHook(t, tt.ctx)

			for k, v := range tt.want {
				assert.Equal(t, v, entry[k], k)
			}
			for _, k := range tt.missing {
				assert.NotContains(t, entry, k)
			}
		})
	}
}

func TestContextHook_RunWithoutCtx(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Msg("no ctx")

	assert.NotContains(t, buf.String(), "username")
}
