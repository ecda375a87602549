package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerSetsRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ctxLogger *zerolog.Logger
	err := Logger(func(c echo.Context) error {
		ctxLogger = log.Ctx(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	require.NotNil(t, ctxLogger)
	assert.NotEqual(t, zerolog.Disabled, ctxLogger.GetLevel())
}

func TestLoggerKeepsIncomingRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()

	err := Logger(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(e.NewContext(req, rec))
	require.NoError(t, err)

	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
}
