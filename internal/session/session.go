// Package session implements the dashboard's mock login.
//
// Nothing here verifies an identity: a password only has to satisfy the
// strength rule and an OAuth credential only has to be present. The resulting
// Session value is passed explicitly to whatever needs the user's email.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atikulmunna/chatlens/internal/apperr"
)

// Provider names how a session was opened.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderOAuth    Provider = "oauth"
)

// passwordRule requires 8+ characters from [A-Za-z\d@$!%*?&] with at least
// one lowercase, one uppercase, one digit and one symbol.
var passwordRule = regexp2.MustCompile(
	`^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[@$!%*?&])[A-Za-z\d@$!%*?&]{8,}$`,
	regexp2.None,
)

func init() {
	passwordRule.MatchTimeout = 100 * time.Millisecond
}

// Session is the logged-in state handed to request handlers.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	LoggedIn  bool      `json:"loggedIn"`
	Provider  Provider  `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps open sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	log      *zap.Logger
}

// NewStore returns an empty Store.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]Session),
		log:      log,
	}
}

// ValidPassword reports whether pw satisfies the strength rule.
func ValidPassword(pw string) bool {
	ok, err := passwordRule.MatchString(pw)
	return err == nil && ok
}

// Login opens a password session. Any password meeting the rule is accepted.
func (s *Store) Login(email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Session{}, apperr.Validation("email is required")
	}
	if !ValidPassword(password) {
		return Session{}, apperr.Validation("password must be at least 8 characters and include upper and lower case letters, a digit and a special character")
	}
	return s.open(email, ProviderPassword), nil
}

// LoginOAuth opens a session from an OAuth callback. The credential is
// required but never verified.
func (s *Store) LoginOAuth(email, credential string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Session{}, apperr.Validation("email is required")
	}
	if strings.TrimSpace(credential) == "" {
		return Session{}, apperr.Validation("credential is required")
	}
	return s.open(email, ProviderOAuth), nil
}

// Get returns the session for token.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// Logout closes the session for token. Unknown tokens are ignored.
func (s *Store) Logout(token string) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		s.log.Info("session closed", zap.String("email", sess.Email))
	}
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) open(email string, p Provider) Session {
	sess := Session{
		Token:     uuid.NewString(),
		Email:     email,
		LoggedIn:  true,
		Provider:  p,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()

	s.log.Info("session opened", zap.String("email", email), zap.String("provider", string(p)))
	return sess
}
