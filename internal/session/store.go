// Package session owns the authentication session: the access token and the
// username. It persists the session across restarts and is the single
// authority on session teardown: explicit logout and 401-triggered
// invalidation both funnel through it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/task"
)

// ErrNoSession is returned when an operation requires authentication and no
// session exists. Callers must fail fast without contacting the service.
var ErrNoSession = errors.New("not logged in")

// Session is the authenticated state: an opaque access token plus the
// username it was issued for.
type Session struct {
	Token    string `json:"access_token"`
	Username string `json:"username"`
}

// Store owns the session lifecycle. Anonymous -> Authenticated on login;
// back to Anonymous on logout or invalidation. All other components read
// the session through it.
type Store struct {
	mu     sync.Mutex
	cfg    *config.Config
	svc    service.Service
	cur    *Session
	resets []func()
}

// NewStore creates a session store and restores any persisted session.
// A stored token whose JWT exp claim has already passed is discarded so a
// restart does not resurrect a dead session.
func NewStore(cfg *config.Config, svc service.Service) *Store {
	s := &Store{cfg: cfg, svc: svc}
	s.restore()
	return s
}

// OnReset registers a teardown hook run on logout and invalidation. The
// task cache and edit coordinator register here so no task or draft state
// survives the session that produced it.
func (s *Store) OnReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, fn)
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return Session{}, false
	}
	return *s.cur, true
}

// Token returns the access token for authorizing requests.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return "", false
	}
	return s.cur.Token, true
}

// Login authenticates with the service and, on success, stores the session
// in memory and durably. On rejection no session is created and the
// service's message is returned as an *service.AuthError.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, &task.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return Session{}, &task.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	creds, err := s.svc.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{Token: creds.AccessToken, Username: username}

	s.mu.Lock()
	s.cur = &sess
	s.mu.Unlock()

	if err := s.persist(sess); err != nil {
		// The in-memory session stands; only restore-after-restart is lost.
		logrus.WithError(err).Warn("session: failed to persist")
	}
	return sess, nil
}

// Signup registers a new account. It never touches the current session:
// signing up a different account while authenticated leaves the session
// as it was.
func (s *Store) Signup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &task.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return &task.ValidationError{Field: "password", Reason: "must not be empty"}
	}
	return s.svc.Signup(ctx, username, password)
}

// Logout clears the session and runs the registered teardown hooks.
// Safe to call while anonymous.
func (s *Store) Logout() error {
	err := s.teardown()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Invalidate is the automatic termination path, triggered whenever any
// authorized request receives a 401. Equivalent to logout.
func (s *Store) Invalidate() {
	logrus.Warn("session: authorization expired, logging out")
	if err := s.teardown(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("session: failed to remove stored session")
	}
}

func (s *Store) teardown() error {
	s.mu.Lock()
	s.cur = nil
	hooks := make([]func(), len(s.resets))
	copy(hooks, s.resets)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return s.cfg.RemoveSession()
}

func (s *Store) persist(sess Session) error {
	if err := s.cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cfg.SessionPath(), data, 0600)
}

func (s *Store) restore() {
	data, err := os.ReadFile(s.cfg.SessionPath())
	if err != nil {
		return
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		return
	}
	if tokenExpired(sess.Token) {
		logrus.Debug("session: stored token expired, discarding")
		_ = s.cfg.RemoveSession()
		return
	}
	s.cur = &sess
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the client holds no key and the server stays the authority
// via 401. Tokens that don't parse as JWTs are treated as opaque and kept.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
