// Package authtest runs an in-process stand-in of the external auth service
// for tests. It speaks the same HTTP/JSON contract as the real backend:
//
//	POST /register  {email, password}        -> 200 {id, email} | 400 {detail}
//	POST /login     {email, password}        -> 200 {access_token, token_type} | 401 {detail}
//	GET  /protected Authorization: Bearer t  -> 200 {message, user} | 401 {detail}
//
// Tokens are HS256 JWTs. Failures can be injected per path with FailNext.
package authtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// Details returned by the stand-in, exported so tests can assert on them.
const (
	DetailEmailTaken         = "Email already registered"
	DetailBadCredentials     = "Incorrect email or password"
	DetailInvalidToken       = "Could not validate credentials"
	DetailNotAuthenticated   = "Not authenticated"
	MessageProtectedAccessed = "Authentication successful"
	defaultTokenTTL          = 30 * time.Minute
)

// Request is what the stand-in saw for one call.
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type user struct {
	id           int64
	email        string
	passwordHash []byte
}

type failure struct {
	status int
	detail string
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Server is the stand-in auth service.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]*user
	nextID   int64
	secret   []byte
	ttl      time.Duration
	failures map[string][]failure
	requests []Request
}

// Option tweaks a Server before it starts.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens. A negative TTL issues
// tokens that are already expired.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// WithUser pre-registers an account.
func WithUser(email, password string) Option {
	return func(s *Server) { s.addUser(email, password) }
}

// NewServer starts the stand-in and closes it when the test ends.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]*user),
		secret:   []byte("authtest-secret"),
		ttl:      defaultTokenTTL,
		failures: make(map[string][]failure),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.recordRequest)
	e.POST("/register", s.register)
	e.POST("/login", s.login)
	e.GET("/protected", s.protected)

	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Server.Close)
	return s
}

// AddUser registers an account directly and returns its id.
func (s *Server) AddUser(email, password string) int64 {
	return s.addUser(email, password)
}

func (s *Server) addUser(email, password string) int64 {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("authtest: hash password: %v", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.users[email] = &user{id: s.nextID, email: email, passwordHash: hash}
	return s.nextID
}

// HasUser reports whether email is registered.
func (s *Server) HasUser(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok
}

// IssueToken signs a token for a user id with the given lifetime.
func (s *Server) IssueToken(id int64, email string, ttl time.Duration) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Email: email,
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("authtest: sign token: %v", err))
	}
	return signed
}

// FailNext makes the next call to path answer with status and detail.
// Calls queue up: FailNext twice fails the next two calls.
func (s *Server) FailNext(path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], failure{status: status, detail: detail})
}

// Requests returns a copy of the calls seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountPath returns how many calls hit path.
func (s *Server) CountPath(path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) recordRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        req.Method,
			Path:          req.URL.Path,
			Authorization: req.Header.Get("Authorization"),
			RequestID:     req.Header.Get("X-Request-ID"),
		})
		queue := s.failures[req.URL.Path]
		var injected *failure
		if len(queue) > 0 {
			injected = &queue[0]
			s.failures[req.URL.Path] = queue[1:]
		}
		s.mu.Unlock()

		if injected != nil {
			if injected.detail == "" {
				return c.NoContent(injected.status)
			}
			return c.JSON(injected.status, map[string]string{"detail": injected.detail})
		}
		return next(c)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil || in.Email == "" || in.Password == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "field required"}},
		})
	}

	if s.HasUser(in.Email) {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": DetailEmailTaken})
	}

	id := s.addUser(in.Email, in.Password)
	return c.JSON(http.StatusOK, map[string]any{
		"id":         id,
		"email":      in.Email,
		"created_at": time.Now().UTC(),
	})
}

func (s *Server) login(c echo.Context) error {
	var in credentials
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "malformed body"})
	}

	s.mu.Lock()
	u, ok := s.users[in.Email]
	ttl := s.ttl
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(in.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": DetailBadCredentials})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"access_token": s.IssueToken(u.id, u.email, ttl),
		"token_type":   "bearer",
	})
}

func (s *Server) protected(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return c.JSON(http.StatusForbidden, map[string]string{"detail": DetailNotAuthenticated})
	}

	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": DetailInvalidToken})
	}

	s.mu.Lock()
	u, found := s.users[cl.Email]
	s.mu.Unlock()
	if !found || strconv.FormatInt(u.id, 10) != cl.Subject {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": DetailInvalidToken})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": MessageProtectedAccessed,
		"user": map[string]any{
			"id":    u.id,
			"email": u.email,
		},
	})
}
