// Package session holds the process-wide auth state: the bearer token and
// the logged-in profile. Persistence goes through an external key-value
// Store; the session itself decides when the pair is valid.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"forkful/faults"
	"forkful/models"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Store is the key-value persistence collaborator (browser localStorage in
// the original client). Implementations need not be safe for concurrent use;
// the session serializes access.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Authenticator is the credential-exchange slice of the gateway.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
}

type Session struct {
	mu    sync.Mutex
	api   Authenticator
	store Store
	token string
	user  *models.User
}

func New(api Authenticator, store Store) *Session {
	return &Session{api: api, store: store}
}

// Restore attempts to resurrect a previous session from the store. The token
// signature cannot be checked client-side, but an expired token is discarded
// so the engine never starts with a credential the server will reject.
func (s *Session) Restore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.store.Get(tokenKey)
	if !ok || token == "" {
		return false
	}
	userJSON, ok := s.store.Get(userKey)
	if !ok {
		s.clearLocked()
		return false
	}
	if expired(token) {
		s.clearLocked()
		return false
	}
	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID == "" {
		s.clearLocked()
		return false
	}
	s.token = token
	s.user = &user
	return true
}

func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.setAuth(resp)
}

func (s *Session) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	resp, err := s.api.Signup(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	return s.setAuth(resp)
}

func (s *Session) setAuth(resp *models.AuthResponse) (*models.User, error) {
	if resp.Token == "" || resp.User.ID == "" {
		return nil, faults.Integrityf("auth response missing token or user")
	}
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return nil, faults.Integrityf("encode user profile: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.store.Set(tokenKey, resp.Token)
	s.store.Set(userKey, string(userJSON))
	return &user, nil
}

// Logout clears token and profile together; there is no state where one
// survives the other.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.token = ""
	s.user = nil
	s.store.Delete(tokenKey)
	s.store.Delete(userKey)
}

// Token satisfies gateway.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}
