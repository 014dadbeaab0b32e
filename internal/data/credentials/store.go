// Package credentials persists the login state (tokens and cached user)
// as a JSON file in the data directory.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"

	"github.com/colonyops/magazine/internal/core/magazine"
)

// FileName is the credentials file inside the data directory.
const FileName = "credentials.json"

// ErrNotLoggedIn is returned by Token when no access token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials is the root JSON structure stored on disk.
type Credentials struct {
	Access   string         `json:"access,omitempty"`
	Refresh  string         `json:"refresh,omitempty"`
	Username string         `json:"username,omitempty"`
	User     *magazine.User `json:"current_user,omitempty"`
}

// Store reads and writes Credentials at a fixed path. It also serves as the
// oauth2.TokenSource for the API client, so a login takes effect on the next
// request.
type Store struct {
	path string
	mu   sync.RWMutex
}

var _ oauth2.TokenSource = (*Store)(nil)

// NewStore creates a store backed by dataDir/credentials.json.
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, FileName)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored credentials. A missing file yields the zero value.
func (s *Store) Load() (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Save stores the tokens from a successful login and forgets any cached user.
func (s *Store) Save(username string, tokens magazine.Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(Credentials{
		Access:   tokens.Access,
		Refresh:  tokens.Refresh,
		Username: username,
	})
}

// SetUser caches the current user; nil drops the cache.
func (s *Store) SetUser(u *magazine.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	creds.User = u
	return s.save(creds)
}

// Clear removes all stored credentials (logout).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// LoggedIn reports whether an access token is stored.
func (s *Store) LoggedIn() bool {
	creds, err := s.Load()
	return err == nil && creds.Access != ""
}

// Token implements oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	creds, err := s.Load()
	if err != nil {
		return nil, err
	}
	if creds.Access == "" {
		return nil, ErrNotLoggedIn
	}
	return &oauth2.Token{AccessToken: creds.Access, TokenType: "Bearer"}, nil
}

func (s *Store) load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

func (s *Store) save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
