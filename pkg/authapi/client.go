package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// Error is a rejection produced by the backend itself, as opposed to a
// transport failure. Its message is the backend's own and is surfaced to
// callers verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Client talks to the authentication backend over its JSON envelope
// protocol. It implements session.Backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ session.Backend = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled HTTP client. The caller owns
// timeout configuration in that case.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger for request diagnostics. The default
// discards all logs.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates a backend client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("authapi"))
	return c, nil
}

// envelope is the wrapper every backend response uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type loginRequest struct {
	IDToken string       `json:"idToken"`
	Role    session.Role `json:"role"`
}

type meData struct {
	User *session.User `json:"user"`
}

// Login exchanges a verified identity token for session credentials. A
// backend rejection comes back as *Error carrying the backend's message,
// so callers can show it as-is.
func (c *Client) Login(ctx context.Context, idToken string, role session.Role) (*session.LoginData, error) {
	env, status, err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{IDToken: idToken, Role: role}, "")
	if err != nil {
		return nil, err
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "login failed"
		}
		return nil, &Error{Status: status, Message: msg}
	}

	var data session.LoginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if data.AccessToken == "" || data.RefreshToken == "" || data.User == nil {
		return nil, fmt.Errorf("%w: login data incomplete", ErrMalformedResponse)
	}
	return &data, nil
}

// Me returns the profile the backend currently associates with the access
// token. Rejections with an auth status wrap ErrUnauthorized.
func (c *Client) Me(ctx context.Context, accessToken string) (*session.User, error) {
	env, status, err := c.do(ctx, http.MethodGet, "/auth/me", nil, accessToken)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "session check failed"
		}
		apiErr := &Error{Status: status, Message: msg}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, errors.Join(ErrUnauthorized, apiErr)
		}
		return nil, apiErr
	}

	var data meData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if data.User == nil {
		return nil, fmt.Errorf("%w: profile data missing user", ErrMalformedResponse)
	}
	return data.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, accessToken string) (envelope, int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, 0, fmt.Errorf("call auth backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return envelope{}, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.ErrorContext(ctx, "unparseable backend response",
			slog.Int("status", resp.StatusCode),
			logger.Error(err),
		)
		return envelope{}, resp.StatusCode, fmt.Errorf("%w: status %d", ErrMalformedResponse, resp.StatusCode)
	}

	c.logger.DebugContext(ctx, "auth backend call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Bool("success", env.Success),
	)
	return env, resp.StatusCode, nil
}
