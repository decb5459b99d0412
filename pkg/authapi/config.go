package authapi

import "time"

// Config holds the backend client configuration, typically loaded from
// the environment with the config package.
type Config struct {
	// BaseURL is the root of the authentication backend, for example
	// "https://api.example.com".
	BaseURL string `env:"AUTH_API_BASE_URL,required"`

	// APIKey is sent with every request as X-API-Key when set.
	APIKey string `env:"AUTH_API_KEY"`

	// Timeout bounds every backend call, including connection setup and
	// reading the response.
	Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"15s"`
}
