package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Run("wraps error under error key", func(t *testing.T) {
		err := errors.New("boom")
		attr := logger.Error(err)
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, err, attr.Value.Any())
	})

	t.Run("nil error produces empty attr", func(t *testing.T) {
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	})
}

func TestErrors(t *testing.T) {
	t.Run("groups non-nil errors", func(t *testing.T) {
		attr := logger.Errors(errors.New("first"), nil, errors.New("third"))
		assert.Equal(t, "errors", attr.Key)
		assert.Len(t, attr.Value.Group(), 2)
	})

	t.Run("all nil produces empty attr", func(t *testing.T) {
		assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	})
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, "component", logger.Component("session").Key)
	assert.Equal(t, "session", logger.Component("session").Value.String())

	assert.Equal(t, "user_id", logger.UserID("42").Key)
	assert.True(t, logger.UserID(nil).Equal(slog.Attr{}))

	assert.Equal(t, "role", logger.Role("admin").Key)
	assert.True(t, logger.Role(nil).Equal(slog.Attr{}))

	assert.Equal(t, "route", logger.Route("/").Key)
	assert.Equal(t, "/", logger.Route("/").Value.String())
}
