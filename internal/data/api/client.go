// Package api is the HTTP implementation of magazine.API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/colonyops/magazine/internal/core/logging"
	"github.com/colonyops/magazine/internal/core/magazine"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	DefaultTimeout = 15 * time.Second

	// maxErrorBody bounds how much of an error response is kept as detail.
	maxErrorBody = 4 << 10
)

type authMode int

const (
	authNone authMode = iota
	// authOptional attaches the bearer token when one is available.
	authOptional
	authRequired
)

// Client talks to the magazine backend. Authorization headers are added by
// an oauth2 transport built from tokens, never by individual calls.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	tokens   oauth2.TokenSource
	validate *validator.Validate
	logger   zerolog.Logger
}

var _ magazine.API = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Tokens supplies the access token. A source that returns an error is
	// treated as "not logged in".
	Tokens oauth2.TokenSource
	// HTTPClient is the base client; defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		timeout:  opts.Timeout,
		http:     opts.HTTPClient,
		tokens:   opts.Tokens,
		validate: validator.New(),
		logger:   logging.Component("api"),
	}
}

func (c *Client) Login(ctx context.Context, req magazine.LoginRequest) (magazine.Tokens, error) {
	if err := c.check(req); err != nil {
		return magazine.Tokens{}, err
	}

	var tokens magazine.Tokens
	if err := c.doJSON(ctx, http.MethodPost, "/auth/token/", req, authNone, &tokens); err != nil {
		return magazine.Tokens{}, err
	}
	return tokens, nil
}

func (c *Client) Register(ctx context.Context, req magazine.RegisterRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/register/", req, authNone, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (magazine.User, error) {
	var u magazine.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/user/", nil, authRequired, &u); err != nil {
		return magazine.User{}, err
	}
	return u, nil
}

func (c *Client) ListPosts(ctx context.Context) ([]magazine.Post, error) {
	var posts []magazine.Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts/", nil, authOptional, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, req magazine.CreatePostRequest) (magazine.Post, error) {
	if err := c.check(req); err != nil {
		return magazine.Post{}, err
	}

	body, contentType, err := encodePostForm(req)
	if err != nil {
		return magazine.Post{}, err
	}

	var post magazine.Post
	if err := c.do(ctx, http.MethodPost, "/posts/", body, contentType, authRequired, &post); err != nil {
		return magazine.Post{}, err
	}
	return post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	ctx = logging.WithPostID(ctx, id)
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d/", id), nil, authRequired, nil)
}

func (c *Client) ToggleLike(ctx context.Context, id int64) (magazine.LikeStatus, error) {
	ctx = logging.WithPostID(ctx, id)

	var resp struct {
		Status magazine.LikeStatus `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like/", id), nil, authRequired, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *Client) Comment(ctx context.Context, postID int64, req magazine.CommentRequest) (magazine.Comment, error) {
	if err := c.check(req); err != nil {
		return magazine.Comment{}, err
	}
	ctx = logging.WithPostID(ctx, postID)

	var comment magazine.Comment
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comment/", postID), req, authRequired, &comment); err != nil {
		return magazine.Comment{}, err
	}
	return comment, nil
}

// check validates a request struct before it goes on the wire.
func (c *Client) check(req any) error {
	if err := c.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &magazine.ValidationError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
		}
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, auth authMode, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, auth, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, auth authMode, out any) error {
	hc, err := c.client(ctx, auth)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().Ctx(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// client picks a plain or bearer-authorized http.Client for auth.
func (c *Client) client(ctx context.Context, auth authMode) (*http.Client, error) {
	if auth == authNone || c.tokens == nil {
		if auth == authRequired {
			return nil, magazine.ErrUnauthorized
		}
		return c.http, nil
	}

	if _, err := c.tokens.Token(); err != nil {
		if auth == authRequired {
			return nil, fmt.Errorf("%w: %v", magazine.ErrUnauthorized, err)
		}
		return c.http, nil
	}

	return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.http), c.tokens), nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Detail string `json:"detail"`
	}
	detail := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		detail = body.Detail
	}

	return &magazine.APIError{Status: resp.StatusCode, Detail: detail}
}

func encodePostForm(req magazine.CreatePostRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", req.Title); err != nil {
		return nil, "", fmt.Errorf("write title: %w", err)
	}
	if err := w.WriteField("body", req.Body); err != nil {
		return nil, "", fmt.Errorf("write body: %w", err)
	}

	if req.ImagePath != "" {
		f, err := os.Open(req.ImagePath)
		if err != nil {
			return nil, "", fmt.Errorf("open image: %w", err)
		}
		defer func() { _ = f.Close() }()

		part, err := w.CreateFormFile("image", filepath.Base(req.ImagePath))
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
