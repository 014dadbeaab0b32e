package logging

import (
	"context"
	"testing"
)

func TestWithUsername(t *testing.T) {
	ctx := WithUsername(context.Background(), "ada")

	if got := GetUsername(ctx); got != "ada" {
		t.Errorf("GetUsername() = %q, want %q", got, "ada")
	}
}

func TestWithPostID(t *testing.T) {
	ctx := WithPostID(context.Background(), 42)

	got, ok := GetPostID(ctx)
	if !ok {
		t.Fatal("GetPostID() ok = false, want true")
	}
	if got != 42 {
		t.Errorf("GetPostID() = %d, want 42", got)
	}
}

func TestGetUsername_NotPresent(t *testing.T) {
	if got := GetUsername(context.Background()); got != "" {
		t.Errorf("GetUsername() = %q, want empty string", got)
	}
}

func TestGetPostID_NotPresent(t *testing.T) {
	if _, ok := GetPostID(context.Background()); ok {
		t.Error("GetPostID() ok = true, want false")
	}
}
