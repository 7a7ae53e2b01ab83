package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/common"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/dmitrijs2005/authdemo/internal/netx"
)

const (
	loginPath     = "/login"
	registerPath  = "/register"
	protectedPath = "/protected"
)

// HTTPClient is the HTTP/JSON implementation of Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
	newID   func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds every request. Zero keeps the current setting.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient validates baseURL and builds a client for it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	h := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logging.Discard(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	err := h.do(ctx, http.MethodPost, loginPath, "", credentialsRequest{Email: email, Password: password}, &out, loginKind)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &ServiceError{Kind: ErrRequestFailed, Status: http.StatusOK, Err: errors.New("empty access token")}
	}
	return out.AccessToken, nil
}

func (h *HTTPClient) Register(ctx context.Context, email, password string) error {
	return h.do(ctx, http.MethodPost, registerPath, "", credentialsRequest{Email: email, Password: password}, nil, registerKind)
}

func (h *HTTPClient) FetchIdentity(ctx context.Context, token string) (*models.ProtectedResource, error) {
	var out models.ProtectedResource
	if err := h.do(ctx, http.MethodGet, protectedPath, token, nil, &out, identityKind); err != nil {
		return nil, err
	}
	if !out.HasIdentity() {
		return nil, &ServiceError{Kind: ErrUnauthorized, Status: http.StatusOK, Detail: DetailNoIdentity}
	}
	return &out, nil
}

// do performs one exchange. kind maps a non-2xx status to a sentinel error.
func (h *HTTPClient) do(ctx context.Context, method, path, token string, body, out any, kind func(int) error) error {
	requestID := h.newID()
	log := h.log.With("method", method, "path", path, "request_id", requestID)

	req, err := netx.NewJSONRequest(ctx, method, h.baseURL+path, body)
	if err != nil {
		return &ServiceError{Kind: ErrRequestFailed, Err: err}
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		log.Warn(ctx, "auth service unreachable", "error", err)
		return &ServiceError{Kind: ErrRequestFailed, Err: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "auth service responded", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{
			Kind:   kind(resp.StatusCode),
			Status: resp.StatusCode,
			Detail: netx.ReadErrorDetail(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := netx.DecodeJSON(resp.Body, out); err != nil {
		return &ServiceError{Kind: ErrRequestFailed, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func isClientError(status int) bool {
	return status >= 400 && status < 500
}

// loginKind covers 401 bad credentials, 403 locked account and 429 throttling.
func loginKind(status int) error {
	if isClientError(status) {
		return ErrInvalidCredentials
	}
	return ErrRequestFailed
}

func registerKind(status int) error {
	if isClientError(status) {
		return ErrRegistrationFailed
	}
	return ErrRequestFailed
}

func identityKind(status int) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return ErrRequestFailed
}
