package accounts

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/guardianhealth/medmaintain/internal/model"
	"github.com/guardianhealth/medmaintain/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	ErrUserExists         = errors.New("accounts: username already taken")
)

// Session is an authenticated operator session. Tokens are opaque and
// live only for the process lifetime.
type Session struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Service performs credential checks against the store's local user table
// and hands out sessions. Anything beyond that is out of scope here.
type Service struct {
	store *store.Store

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(st *store.Store) *Service {
	return &Service{
		store:    st,
		sessions: make(map[string]*Session),
	}
}

// Login checks the credentials and creates a session on success.
func (s *Service) Login(username, password string) (*Session, error) {
	user, ok := s.store.FindUser(username)
	if !ok || user.Password != password {
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	session := &Session{
		Token: uuid.NewString(),
		User:  user,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return session, nil
}

// Register creates a new local account.
func (s *Service) Register(name, username, password string) error {
	_, err := s.store.AddUser(model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Username: username,
		Password: password,
	})
	if errors.Is(err, store.ErrUserExists) {
		return ErrUserExists
	}
	return err
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Validate resolves a session token.
func (s *Service) Validate(token string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	return session, ok
}

// Revoke drops every session, e.g. after a system reset.
func (s *Service) Revoke() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*Session)
}
