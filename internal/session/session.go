package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mvoronov/storefront/internal/api"
	"github.com/mvoronov/storefront/internal/localstore"
)

// Persisted keys. Invariant: both present or both absent.
const (
	keyToken = "authToken"
	keyUser  = "authUser"
)

// Store owns the authenticated identity for the whole process: the user
// record plus its bearer token, persisted across restarts. Consumers must
// treat User() == nil as anonymous; a token that failed verification is
// never observable.
type Store struct {
	mu      sync.RWMutex
	user    *api.User
	token   string
	loading bool

	client    *api.Client
	persist   *localstore.Store
	log       *slog.Logger
	listeners []func()
}

func NewStore(client *api.Client, persist *localstore.Store, log *slog.Logger) *Store {
	return &Store{
		client:  client,
		persist: persist,
		log:     log,
		loading: true,
	}
}

// OnChange registers a listener invoked once per token change: login,
// logout, and startup restoration completing. Register before Restore.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// Restore hydrates the session from the persisted token, verifying it
// against the backend first. Exactly one attempt, no retry: any failure
// (transport or non-success status) discards both persisted values.
// Fires exactly one change notification when it resolves.
func (s *Store) Restore(ctx context.Context) {
	token, ok, err := s.persist.Get(keyToken)
	if err != nil {
		s.log.Warn("read persisted token", "error", err)
	}

	if ok && token != "" {
		user, err := s.client.Me(ctx, token)
		if err != nil {
			s.log.Info("stored session rejected, starting anonymous", "error", err)
			s.clearPersisted()
		} else {
			s.mu.Lock()
			s.user = user
			s.token = token
			s.mu.Unlock()
			// Keep the stored user record fresh.
			s.persistUser(user)
		}
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// Login adopts a token and user the caller already obtained from the
// login endpoint. Synchronous, no backend call.
func (s *Store) Login(token string, user *api.User) {
	if err := s.persist.Set(keyToken, token); err != nil {
		s.log.Warn("persist token", "error", err)
	}
	s.persistUser(user)

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	s.notify()
}

// Logout tears the client-side session down immediately, then notifies
// the backend best-effort. A failed backend call is logged and swallowed:
// locally the session is already gone.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.clearPersisted()
	s.notify()

	if token != "" {
		if err := s.client.Logout(ctx, token); err != nil {
			s.log.Warn("backend logout failed", "error", err)
		}
	}
}

// User returns the authenticated user, or nil when anonymous.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading is true until Restore has resolved.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) persistUser(user *api.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Warn("encode persisted user", "error", err)
		return
	}
	if err := s.persist.Set(keyUser, string(data)); err != nil {
		s.log.Warn("persist user", "error", err)
	}
}

func (s *Store) clearPersisted() {
	if err := s.persist.Delete(keyToken); err != nil {
		s.log.Warn("clear persisted token", "error", err)
	}
	if err := s.persist.Delete(keyUser); err != nil {
		s.log.Warn("clear persisted user", "error", err)
	}
}
