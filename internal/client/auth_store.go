package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// tokenFileName matches the storage key the web client used.
const tokenFileName = "booksy_token"

// AuthStore holds the bearer token. A non-empty token means "authenticated"
// for UI purposes; whether it is still accepted by the server is only
// discovered when a protected request fails.
type AuthStore struct {
	mu        sync.RWMutex
	path      string
	token     string
	notify    *broadcaster
	stopWatch func() error
}

// NewAuthStore opens the token persisted under dir, restoring any previously
// saved token once at startup.
func NewAuthStore(dir string) (*AuthStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &AuthStore{
		path:   filepath.Join(dir, tokenFileName),
		notify: newBroadcaster(),
	}
	s.token = s.load()

	// Another process signing in or out updates our in-memory state too.
	if stop, err := watchFile(s.path, s.reload); err == nil {
		s.stopWatch = stop
	}
	return s, nil
}

func (s *AuthStore) load() string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (s *AuthStore) reload() {
	s.mu.Lock()
	s.token = s.load()
	s.mu.Unlock()
	s.notify.emit()
}

// Token returns the current bearer token, or "" when signed out.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated is derived state: a non-empty token counts as signed in.
func (s *AuthStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// SignIn persists the token and updates in-memory state.
func (s *AuthStore) SignIn(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	s.token = token
	s.notify.emit()
	return nil
}

// SignOut clears persisted and in-memory state.
func (s *AuthStore) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	s.token = ""
	s.notify.emit()
	return nil
}

// Subscribe registers for sign-in/sign-out signals from both transports.
func (s *AuthStore) Subscribe() (<-chan struct{}, func()) {
	return s.notify.subscribe()
}

// Close stops the cross-process watcher.
func (s *AuthStore) Close() error {
	if s.stopWatch != nil {
		return s.stopWatch()
	}
	return nil
}
