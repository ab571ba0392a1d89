package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

func newLoggedApp(logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Use(RequestLogger(logger, nil))
	return app
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newLoggedApp(zap.New(core))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(204), entries[0].ContextMap()["status"])
}

// Failed requests log the mapped error status, not the 200 still
// sitting on the response when the handler error bubbles up.
func TestRequestLoggerRecordsMappedErrorStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newLoggedApp(zap.New(core))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Order")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 404, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(404), entries[0].ContextMap()["status"])
}
