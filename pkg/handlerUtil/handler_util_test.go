package handlerUtil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dijital-backend/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, *ErrorHandler) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler(logger)})
	app.Use(recover.New())
	return app, New(logger)
}

func call(t *testing.T, app *fiber.App, path string) (*http.Response, response.Envelope) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHandle(t *testing.T) {
	app, h := newTestApp()
	notFound := response.NewError(http.StatusNotFound, "Blog yazısı bulunamadı")

	app.Get("/domain", func(c *fiber.Ctx) error {
		return h.Handle(c, "req-1", notFound, c.Path(), "get")
	})
	app.Get("/unexpected", func(c *fiber.Ctx) error {
		return h.Handle(c, "unknown", errors.New("boom"), c.Path(), "get")
	})

	resp, env := call(t, app, "/domain")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Blog yazısı bulunamadı", env.Message)

	resp, env = call(t, app, "/unexpected")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, MessageInternalError, env.Message)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestFiberErrorHandler(t *testing.T) {
	app, _ := newTestApp()

	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed")
	})

	resp, env := call(t, app, "/panic")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, MessageInternalError, env.Message)

	resp, env = call(t, app, "/fiber")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "Method Not Allowed", env.Message)
}
