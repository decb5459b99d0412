// Package config loads configuration structs from environment variables.
//
// Structs declare their environment bindings with `env` tags; parsing is
// delegated to github.com/caarlos0/env. A .env file in the working directory
// is loaded once per process before the first parse, so local development
// does not need exported shell variables.
//
// Example:
//
//	type GatewayConfig struct {
//		BaseURL string        `env:"OTP_GATEWAY_URL,required"`
//		Timeout time.Duration `env:"OTP_GATEWAY_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg GatewayConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// MustLoad panics on failure and suits configuration the process cannot
// start without.
package config
