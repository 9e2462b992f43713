package context

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	RequestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	DefaultTimeout  = 10 * time.Second
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

// FromFiberCtx derives a request scoped context from the fiber user context,
// carrying the id set by the request id middleware.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()

	requestID, ok := c.Locals(requestIDHeader).(string)
	if !ok || requestID == "" {
		requestID = c.Get(requestIDHeader)

		if requestID == "" {
			requestID = "unknown"
		}
	}

	return WithRequestID(ctx, requestID)
}

// WithTimeout is FromFiberCtx bounded by DefaultTimeout.
func WithTimeout(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(FromFiberCtx(c), DefaultTimeout)
}
