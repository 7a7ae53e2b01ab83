package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/authdemo/internal/client/client"
	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/logging"
)

// ErrSuperseded is returned when a newer session operation started while this
// one was in flight. The result was dropped and the state left untouched.
var ErrSuperseded = errors.New("superseded by a newer session operation")

const (
	defaultRetryBase      = 200 * time.Millisecond
	defaultWatcherTimeout = 5 * time.Second
)

// SessionState is a snapshot of the session.
type SessionState struct {
	Status   models.SessionStatus
	Identity *models.Identity
	// LastError is the failure of the most recent validation, if any.
	LastError error
}

// IsAuthenticated is true if and only if an Identity is present.
func (s SessionState) IsAuthenticated() bool {
	return s.Identity != nil
}

// SessionStore defines the session operations used by screens and front ends.
//
// Contract:
//   - Initialize: validate the persisted token, if any. Never fails because
//     of the service; only storage errors are returned.
//   - Login: exchange credentials, persist the token, validate it. Failures
//     before the token is issued leave the state untouched.
//   - Register: create an account; never logs in.
//   - Validate: fetch the identity for token and apply the outcome.
//   - Logout: forget token and identity. Idempotent.
//
// Login, Register and Logout return the route the caller should navigate to,
// or models.RouteNone to stay.
type SessionStore interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, email, password string) (models.Route, error)
	Register(ctx context.Context, email, password string) (models.Route, error)
	Validate(ctx context.Context, token string) error
	Logout(ctx context.Context) (models.Route, error)
	State() SessionState
	Token(ctx context.Context) (string, error)
	IsAuthenticated() bool
	StartRevalidationWatcher(ctx context.Context, interval time.Duration)
}

type sessionStore struct {
	client client.Client
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	strictLogout bool
	retries      int
	retryBase    time.Duration

	mu       sync.Mutex
	gen      uint64
	status   models.SessionStatus
	identity *models.Identity
	lastErr  error
}

type Option func(*sessionStore)

// WithStrictLogout makes every validation failure log out, including
// failures to reach the service.
func WithStrictLogout(strict bool) Option {
	return func(s *sessionStore) { s.strictLogout = strict }
}

// WithValidateRetries retries unreachable-service failures during
// validation up to n times with exponential backoff starting at base.
// A zero base keeps the default.
func WithValidateRetries(n int, base time.Duration) Option {
	return func(s *sessionStore) {
		if n > 0 {
			s.retries = n
		}
		if base > 0 {
			s.retryBase = base
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *sessionStore) { s.log = l }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *sessionStore) { s.now = now }
}

// NewSessionStore builds an anonymous session on top of c and tokens.
func NewSessionStore(c client.Client, tokens TokenStore, opts ...Option) SessionStore {
	s := &sessionStore{
		client:    c,
		tokens:    tokens,
		log:       logging.Discard(),
		now:       time.Now,
		retryBase: defaultRetryBase,
		status:    models.StatusAnonymous,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sessionStore) Initialize(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if errors.Is(err, common.ErrorTokenNotFound) {
		s.log.Debug(ctx, "no persisted token")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Validate(ctx, token); err != nil && !errors.Is(err, ErrSuperseded) {
		s.log.Warn(ctx, "persisted token did not validate", "error", err)
	}
	return nil
}

func (s *sessionStore) Login(ctx context.Context, email, password string) (models.Route, error) {
	ticket := s.generation()

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login rejected", "email", email, "error", err)
		return models.RouteNone, err
	}

	// Persist under the lock so a concurrent Logout cannot interleave.
	s.mu.Lock()
	if s.gen != ticket {
		s.mu.Unlock()
		s.log.Debug(ctx, "login result dropped", "email", email)
		return models.RouteNone, ErrSuperseded
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		s.mu.Unlock()
		return models.RouteNone, fmt.Errorf("persist token: %w", err)
	}
	gen := s.beginLocked()
	s.mu.Unlock()

	if err := s.validate(ctx, gen, token); err != nil {
		return models.RouteNone, err
	}

	s.log.Info(ctx, "logged in", "email", email)
	return models.RouteDashboard, nil
}

func (s *sessionStore) Register(ctx context.Context, email, password string) (models.Route, error) {
	if err := s.client.Register(ctx, email, password); err != nil {
		s.log.Warn(ctx, "registration rejected", "email", email, "error", err)
		return models.RouteNone, err
	}
	s.log.Info(ctx, "registered", "email", email)
	return models.RouteLogin, nil
}

func (s *sessionStore) Validate(ctx context.Context, token string) error {
	s.mu.Lock()
	gen := s.beginLocked()
	s.mu.Unlock()
	return s.validate(ctx, gen, token)
}

func (s *sessionStore) Logout(ctx context.Context) (models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	err := s.clearLocked(ctx, nil)
	if err != nil {
		return models.RouteLogin, err
	}
	s.log.Info(ctx, "logged out")
	return models.RouteLogin, nil
}

func (s *sessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SessionState{Status: s.status, LastError: s.lastErr}
	if s.identity != nil {
		id := *s.identity
		st.Identity = &id
	}
	return st
}

// Token returns the persisted token or common.ErrorTokenNotFound.
func (s *sessionStore) Token(ctx context.Context) (string, error) {
	return s.tokens.Load(ctx)
}

func (s *sessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// StartRevalidationWatcher retries validation of the stored token every
// interval while the service is unreachable. It blocks until ctx is done.
func (s *sessionStore) StartRevalidationWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.State().Status != models.StatusUnreachable {
				continue
			}

			token, err := s.tokens.Load(ctx)
			if err != nil {
				s.log.Warn(ctx, "revalidation skipped", "error", err)
				continue
			}

			vctx, cancel := context.WithTimeout(ctx, defaultWatcherTimeout)
			err = s.Validate(vctx, token)
			cancel()
			if err == nil {
				s.log.Info(ctx, "auth service reachable again")
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *sessionStore) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// beginLocked starts a new validation generation.
func (s *sessionStore) beginLocked() uint64 {
	s.gen++
	s.status = models.StatusAuthenticating
	return s.gen
}

// clearLocked drops identity and token. cause is kept as LastError.
func (s *sessionStore) clearLocked(ctx context.Context, cause error) error {
	s.identity = nil
	s.status = models.StatusAnonymous
	s.lastErr = cause
	if err := s.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *sessionStore) validate(ctx context.Context, gen uint64, token string) error {
	var (
		res *models.ProtectedResource
		err error
	)
	if client.TokenExpired(token, s.now()) {
		err = &client.ServiceError{Kind: client.ErrUnauthorized, Detail: "token expired"}
	} else {
		res, err = s.fetchIdentity(ctx, token)
		if err == nil && !res.HasIdentity() {
			err = &client.ServiceError{Kind: client.ErrUnauthorized, Detail: client.DetailNoIdentity}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		s.log.Debug(ctx, "validation result dropped", "generation", gen, "current", s.gen)
		return ErrSuperseded
	}

	switch {
	case err == nil:
		id := *res.User
		s.identity = &id
		s.status = models.StatusAuthenticated
		s.lastErr = nil
		return nil

	case errors.Is(err, client.ErrUnauthorized) || s.strictLogout:
		s.log.Warn(ctx, "token rejected, logging out", "error", err)
		if derr := s.clearLocked(ctx, err); derr != nil {
			return errors.Join(err, derr)
		}
		return err

	default:
		s.log.Warn(ctx, "auth service unreachable, keeping token", "error", err)
		s.identity = nil
		s.status = models.StatusUnreachable
		s.lastErr = err
		return err
	}
}

// fetchIdentity calls the service, retrying only transport failures.
func (s *sessionStore) fetchIdentity(ctx context.Context, token string) (*models.ProtectedResource, error) {
	if s.retries == 0 {
		return s.client.FetchIdentity(ctx, token)
	}

	var res *models.ProtectedResource
	b := retry.WithMaxRetries(uint64(s.retries), retry.NewExponential(s.retryBase))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		r, err := s.client.FetchIdentity(ctx, token)
		if err != nil {
			if client.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		res = r
		return nil
	})
	if err != nil && !errors.Is(err, client.ErrRequestFailed) && !errors.Is(err, client.ErrUnauthorized) {
		// Context ended while waiting between attempts.
		err = &client.ServiceError{Kind: client.ErrRequestFailed, Err: err}
	}
	return res, err
}
