package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/phone"
)

const (
	defaultDevTTL         = 5 * time.Minute
	defaultDevMaxAttempts = 3
)

// DevProvider implements Provider entirely in memory. Issued codes are
// logged at debug level instead of being delivered, which makes it suitable
// for development environments and tests but never for production.
type DevProvider struct {
	logger      *slog.Logger
	ttl         time.Duration
	maxAttempts int
	fixedCode   string
	now         func() time.Time
}

var _ Provider = (*DevProvider)(nil)

// DevOption configures a DevProvider.
type DevOption func(*DevProvider)

// WithDevLogger sets the logger issued codes are written to.
func WithDevLogger(log *slog.Logger) DevOption {
	return func(p *DevProvider) {
		if log != nil {
			p.logger = log
		}
	}
}

// WithDevTTL sets how long an issued code stays confirmable.
func WithDevTTL(ttl time.Duration) DevOption {
	return func(p *DevProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// WithDevMaxAttempts sets how many wrong codes a challenge tolerates.
func WithDevMaxAttempts(n int) DevOption {
	return func(p *DevProvider) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithDevCode pins every challenge to the given code instead of a random
// one. Review builds and end-to-end suites use this to sign in without
// reading logs.
func WithDevCode(code string) DevOption {
	return func(p *DevProvider) {
		if code != "" {
			p.fixedCode = code
		}
	}
}

// WithDevClock overrides the time source for expiry checks.
func WithDevClock(now func() time.Time) DevOption {
	return func(p *DevProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewDevProvider creates an in-memory provider with a 5 minute code TTL
// and 3 attempts per challenge.
func NewDevProvider(opts ...DevOption) *DevProvider {
	p := &DevProvider{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		ttl:         defaultDevTTL,
		maxAttempts: defaultDevMaxAttempts,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *DevProvider) RequestChallenge(ctx context.Context, phoneNumber string) (Challenge, error) {
	if phoneNumber == "" {
		return nil, ErrEmptyPhone
	}

	code := p.fixedCode
	if code == "" {
		generated, err := generateCode()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	p.logger.DebugContext(ctx, "verification code issued",
		slog.String("phone", phone.Mask(phoneNumber)),
		slog.String("code", code),
	)

	return &devChallenge{
		provider:  p,
		phone:     phoneNumber,
		code:      code,
		expiresAt: p.now().Add(p.ttl),
	}, nil
}

// SignOut is a no-op: the dev provider keeps no session state.
func (p *DevProvider) SignOut(ctx context.Context) error {
	return nil
}

// generateCode produces a 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type devChallenge struct {
	provider  *DevProvider
	phone     string
	code      string
	expiresAt time.Time

	mu       sync.Mutex
	attempts int
	consumed bool
}

var _ Challenge = (*devChallenge)(nil)

func (c *devChallenge) Confirm(ctx context.Context, code string) (Assertion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumed {
		return Assertion{}, ErrChallengeConsumed
	}
	if c.provider.now().After(c.expiresAt) {
		return Assertion{}, ErrCodeExpired
	}
	if c.attempts >= c.provider.maxAttempts {
		return Assertion{}, ErrTooManyAttempts
	}
	if code != c.code {
		c.attempts++
		return Assertion{}, ErrInvalidCode
	}

	c.consumed = true
	return Assertion{
		IDToken:  "dev-" + uuid.NewString(),
		Phone:    c.phone,
		IssuedAt: c.provider.now(),
	}, nil
}

func (c *devChallenge) Phone() string {
	return c.phone
}
