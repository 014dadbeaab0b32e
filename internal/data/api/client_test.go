package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/colonyops/magazine/internal/core/magazine"
)

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, errors.New("no credentials")
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens oauth2.TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{
		BaseURL:    srv.URL + "/api/",
		Tokens:     tokens,
		HTTPClient: srv.Client(),
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/token/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req magazine.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada", req.Username)

		writeJSON(t, w, http.StatusOK, magazine.Tokens{Access: "a1", Refresh: "r1"})
	}, nil)

	tokens, err := c.Login(context.Background(), magazine.LoginRequest{Username: "ada", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, magazine.Tokens{Access: "a1", Refresh: "r1"}, tokens)
}

func TestClient_LoginFailureDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"detail": "No active account found with the given credentials",
		})
	}, nil)

	_, err := c.Login(context.Background(), magazine.LoginRequest{Username: "ada", Password: "wrong"})

	var apiErr *magazine.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "No active account found with the given credentials", apiErr.Detail)
	assert.ErrorIs(t, err, magazine.ErrUnauthorized)
}

func TestClient_RegisterRawErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string][]string{
			"username": {"A user with that username already exists."},
		})
	}, nil)

	err := c.Register(context.Background(), magazine.RegisterRequest{
		Username: "ada", Email: "ada@example.com", Password: "long-enough",
	})

	var apiErr *magazine.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Detail, "already exists")
}

func TestClient_RegisterValidation(t *testing.T) {
	called := false
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) { called = true }, nil)

	err := c.Register(context.Background(), magazine.RegisterRequest{
		Username: "ada", Email: "not-an-email", Password: "long-enough",
	})

	var verr *magazine.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email", verr.Field)
	assert.Equal(t, "email", verr.Rule)
	assert.False(t, called, "invalid requests must not reach the backend")
}

func TestClient_ListPostsAttachesTokenWhenAvailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, []magazine.Post{{ID: 1, Title: "Hello"}})
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
}

func TestClient_ListPostsAnonymous(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, []magazine.Post{})
	}, failingSource{})

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClient_ToggleLikeRequiresLogin(t *testing.T) {
	called := false
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) { called = true }, failingSource{})

	_, err := c.ToggleLike(context.Background(), 3)

	assert.ErrorIs(t, err, magazine.ErrUnauthorized)
	assert.False(t, called)
}

func TestClient_ToggleLike(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/3/like/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "liked"})
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))

	status, err := c.ToggleLike(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, magazine.Liked, status)
}

func TestClient_DeletePostNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))

	err := c.DeletePost(context.Background(), 9)
	assert.ErrorIs(t, err, magazine.ErrNotFound)
}

func TestClient_Comment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/5/comment/", r.URL.Path)

		var req magazine.CommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(t, w, http.StatusCreated, magazine.Comment{ID: 11, Body: req.Body})
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))

	comment, err := c.Comment(context.Background(), 5, magazine.CommentRequest{Body: "nice"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), comment.ID)
	assert.Equal(t, "nice", comment.Body)
}

func TestClient_CreatePostMultipart(t *testing.T) {
	img := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(img, []byte("png-bytes"), 0o644))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Title", r.FormValue("title"))
		assert.Equal(t, "Body", r.FormValue("body"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, "cover.png", hdr.Filename)

		writeJSON(t, w, http.StatusCreated, magazine.Post{ID: 8, Title: "Title"})
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))

	post, err := c.CreatePost(context.Background(), magazine.CreatePostRequest{
		Title: "Title", Body: "Body", ImagePath: img,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), post.ID)
}

func TestClient_CreatePostRequiresTitle(t *testing.T) {
	c := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("request should not be sent")
	}, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}))

	_, err := c.CreatePost(context.Background(), magazine.CreatePostRequest{Body: "no title"})

	var verr *magazine.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title", verr.Field)
}
