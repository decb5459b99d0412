package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/phone"
)

// GatewayConfig holds connection settings for the verification gateway.
type GatewayConfig struct {
	BaseURL string        `env:"OTP_GATEWAY_URL,required"`
	APIKey  string        `env:"OTP_GATEWAY_API_KEY"`
	Timeout time.Duration `env:"OTP_GATEWAY_TIMEOUT" envDefault:"10s"`
}

// maxResponseSize caps gateway response bodies to protect against
// misbehaving endpoints.
const maxResponseSize = 1 << 20

// HTTPProvider implements Provider against a phone verification gateway.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

var _ Provider = (*HTTPProvider)(nil)

// HTTPOption configures an HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient overrides the default pooled HTTP client. Useful for
// custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithHTTPLogger sets the logger for gateway diagnostics.
func WithHTTPLogger(log *slog.Logger) HTTPOption {
	return func(p *HTTPProvider) {
		if log != nil {
			p.logger = log
		}
	}
}

// NewHTTPProvider creates a gateway-backed provider from cfg.
func NewHTTPProvider(cfg GatewayConfig, opts ...HTTPOption) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingGatewayURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	p := &HTTPProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
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
		opt(p)
	}
	return p, nil
}

type challengeResponse struct {
	ChallengeID string `json:"challenge_id"`
	ExpiresIn   int    `json:"expires_in"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

type verifyResponse struct {
	IDToken string `json:"id_token"`
	Phone   string `json:"phone"`
}

type gatewayError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (p *HTTPProvider) RequestChallenge(ctx context.Context, phoneNumber string) (Challenge, error) {
	if phoneNumber == "" {
		return nil, ErrEmptyPhone
	}

	var out challengeResponse
	if err := p.post(ctx, "/v1/challenges", map[string]string{"phone": phoneNumber}, &out); err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "verification challenge created",
		slog.String("challenge_id", out.ChallengeID),
		slog.String("phone", phone.Mask(phoneNumber)),
	)

	return &httpChallenge{provider: p, id: out.ChallengeID, phone: phoneNumber}, nil
}

func (p *HTTPProvider) SignOut(ctx context.Context) error {
	return p.post(ctx, "/v1/signout", nil, nil)
}

// post sends a JSON request to the gateway and decodes the response into
// out when out is non-nil. Gateway error codes map onto package sentinels.
func (p *HTTPProvider) post(ctx context.Context, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode gateway request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("call otp gateway: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var gwErr gatewayError
		if err := json.Unmarshal(raw, &gwErr); err != nil || gwErr.Code == "" {
			return fmt.Errorf("otp gateway returned status %d", resp.StatusCode)
		}
		return mapGatewayError(gwErr)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}
	return nil
}

func mapGatewayError(gwErr gatewayError) error {
	switch gwErr.Code {
	case "invalid_code":
		return ErrInvalidCode
	case "code_expired":
		return ErrCodeExpired
	case "too_many_attempts":
		return ErrTooManyAttempts
	case "challenge_consumed":
		return ErrChallengeConsumed
	case "delivery_failed":
		return ErrDeliveryFailed
	default:
		if gwErr.Message != "" {
			return fmt.Errorf("otp gateway: %s: %s", gwErr.Code, gwErr.Message)
		}
		return fmt.Errorf("otp gateway: %s", gwErr.Code)
	}
}

// httpChallenge confirms codes against the gateway. The mutex serializes
// confirmation attempts so a double-submit from the UI cannot race the
// consumed flag.
type httpChallenge struct {
	provider *HTTPProvider
	id       string
	phone    string

	mu       sync.Mutex
	consumed bool
}

var _ Challenge = (*httpChallenge)(nil)

func (c *httpChallenge) Confirm(ctx context.Context, code string) (Assertion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumed {
		return Assertion{}, ErrChallengeConsumed
	}

	var out verifyResponse
	err := c.provider.post(ctx, "/v1/challenges/"+c.id+"/verify", verifyRequest{Code: code}, &out)
	if err != nil {
		return Assertion{}, err
	}

	c.consumed = true

	confirmed := out.Phone
	if confirmed == "" {
		confirmed = c.phone
	}
	return Assertion{
		IDToken:  out.IDToken,
		Phone:    confirmed,
		IssuedAt: time.Now(),
	}, nil
}

func (c *httpChallenge) Phone() string {
	return c.phone
}
