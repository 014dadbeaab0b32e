// Package magazine defines the domain types exchanged with the magazine
// backend and the API contract the client consumes.
package magazine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnauthorized is returned when the backend rejects the credentials
	// or no access token is available.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for unknown posts.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	// Detail is the backend's "detail" field when present, otherwise the
	// raw response body.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
}

// Unwrap maps auth and lookup failures onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	}
	return nil
}

// ValidationError reports a request field rejected before it was sent.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed on '%s' validation", e.Field, e.Rule)
}

// User is the authenticated account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Author is the public view of a post or comment author.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Comment is a reply on a post.
type Comment struct {
	ID        int64     `json:"id"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a feed entry.
type Post struct {
	ID         int64     `json:"id"`
	Author     Author    `json:"author"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Image      string    `json:"image,omitempty"`
	LikesCount int       `json:"likes_count"`
	Comments   []Comment `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwnedBy reports whether u authored the post.
func (p Post) OwnedBy(u *User) bool {
	return u != nil && p.Author.ID == u.ID
}

// Tokens is the JWT pair issued at login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LikeStatus is the result of toggling a like.
type LikeStatus string

const (
	Liked   LikeStatus = "liked"
	Unliked LikeStatus = "unliked"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreatePostRequest is sent as multipart form data. ImagePath, when set, is
// uploaded as the "image" field.
type CreatePostRequest struct {
	Title     string `validate:"required"`
	Body      string
	ImagePath string `validate:"omitempty,file"`
}

type CommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// API is the backend surface used by commands and the TUI.
type API interface {
	Login(ctx context.Context, req LoginRequest) (Tokens, error)
	Register(ctx context.Context, req RegisterRequest) error
	CurrentUser(ctx context.Context) (User, error)
	ListPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (Post, error)
	DeletePost(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, id int64) (LikeStatus, error)
	Comment(ctx context.Context, postID int64, req CommentRequest) (Comment, error)
}
