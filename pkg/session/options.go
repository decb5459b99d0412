package session

import "log/slog"

// DefaultCountryCode is prepended to national phone numbers when no
// override is configured.
const DefaultCountryCode = "91"

// Option configures the session manager.
type Option func(*Manager)

// WithLogger sets the logger used for session diagnostics. The default
// discards all logs.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// WithNavigator sets the callback that receives navigation hints. Without
// it, hints are dropped.
func WithNavigator(navigate NavigateFunc) Option {
	return func(m *Manager) {
		m.navigate = navigate
	}
}

// WithCountryCode overrides DefaultCountryCode for phone normalization.
func WithCountryCode(code string) Option {
	return func(m *Manager) {
		if code != "" {
			m.country = code
		}
	}
}

// WithKeyPrefix namespaces the persisted storage keys, so multiple
// managers can share one store without colliding.
func WithKeyPrefix(prefix string) Option {
	return func(m *Manager) {
		m.keyPrefix = prefix
	}
}

// WithSubscriberBuffer sets the per-subscriber channel capacity. A
// subscriber whose buffer is full misses intermediate snapshots; a larger
// buffer trades memory for fewer drops. Minimum 1.
func WithSubscriberBuffer(size int) Option {
	return func(m *Manager) {
		m.bufSize = max(size, 1)
	}
}
