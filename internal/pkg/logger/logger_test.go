package logger_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lastmile/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	t.Run("should fall back to info on unknown level", func(t *testing.T) {
		l, err := logger.InitLogger("development", "loud")

		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
		assert.Same(t, l, logger.GetLogger())
	})

	t.Run("should honor configured level in production", func(t *testing.T) {
		l, err := logger.InitLogger("production", "warn")

		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	})
}

func TestMiddleware(t *testing.T) {
	newContext := func(e *echo.Echo, header string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/deliveries", nil)
		if header != "" {
			req.Header.Set(logger.RequestIDKey, header)
		}
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("should log completed request with request id", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		e := echo.New()
		c, rec := newContext(e, "req-42")

		h := logger.RequestIDMiddleware(logger.Middleware(zap.New(core))(func(c echo.Context) error {
			assert.NotNil(t, logger.FromContext(c))
			return c.NoContent(http.StatusNoContent)
		}))

		require.NoError(t, h(c))

		assert.Equal(t, "req-42", rec.Header().Get(logger.RequestIDKey))
		entries := logs.FilterMessage("HTTP request completed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, int64(http.StatusNoContent), fields["status"])
		assert.Equal(t, "/api/v1/deliveries", fields["path"])
	})

	t.Run("should generate request id and log failures", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		e := echo.New()
		c, rec := newContext(e, "")

		h := logger.RequestIDMiddleware(logger.Middleware(zap.New(core))(func(echo.Context) error {
			return errors.New("boom")
		}))

		require.Error(t, h(c))

		assert.NotEmpty(t, rec.Header().Get(logger.RequestIDKey))
		assert.Equal(t, 1, logs.FilterMessage("HTTP request failed").Len())
	})
}
