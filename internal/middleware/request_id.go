package middleware

import (
	"dijital-backend/pkg/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	RequestIDKey       = "X-Request-ID"
	maxRequestIDLength = 64
)

// NewRequestIDMiddleware reuses a client supplied X-Request-ID when it is
// short enough to log, otherwise it issues a ULID.
func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if requestID == "" || len(requestID) > maxRequestIDLength {
			id, err := ids.NewULIDFromTimestamp(time.Now())
			if err != nil {
				id = strconv.FormatInt(time.Now().UnixNano(), 36)
			}
			requestID = id
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
