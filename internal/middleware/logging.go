package middleware

import (
	"dijital-backend/pkg/log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

var sensitiveFields = []string{
	"password", "token", "secret", "credential", "authorization",
}

func (m *middleware) NewLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := m.GetRequestID(c)

		err := c.Next()
		if err != nil {
			// let the app error handler pick the status before it is logged
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()

		logFields := log.Fields{
			"request_id":    requestID,
			"method":        c.Method(),
			"path":          c.Path(),
			"status":        status,
			"latency_ms":    time.Since(start).Milliseconds(),
			"ip":            c.IP(),
			"user_agent":    c.Get(fiber.HeaderUserAgent),
			"response_size": len(c.Response().Body()),
		}

		if body := c.Request().Body(); len(body) > 0 {
			logFields["request_body"] = sanitizeRequestBody(body)
		}

		entry := m.log.WithFields(logFields)
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("Server error")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Client error")
		default:
			entry.Info("Success")
		}

		return nil
	}
}

func sanitizeRequestBody(body []byte) string {
	var jsonBody map[string]interface{}
	if err := jsoniter.Unmarshal(body, &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	for field := range jsonBody {
		lower := strings.ToLower(field)
		for _, sensitive := range sensitiveFields {
			if strings.Contains(lower, sensitive) {
				jsonBody[field] = "[SECRET]"
				break
			}
		}
	}

	sanitized, err := jsoniter.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}
