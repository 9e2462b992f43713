package middleware

import (
	"dijital-backend/pkg/credential"
	jwtPkg "dijital-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Middleware interface {
	NewContactRateLimiter(ctx *fiber.Ctx) error
	NewLoginRateLimiter(ctx *fiber.Ctx) error
	NewAdminMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type Options struct {
	Credential   credential.ICredential
	Signer       jwtPkg.ItfJWT
	ContactLimit LimiterStore
	LoginLimit   LimiterStore
}

type middleware struct {
	admin               *adminMiddleware
	contactLimiter      LimiterStore
	loginLimiter        LimiterStore
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, opts Options) Middleware {
	return &middleware{
		admin:               newAdminMiddleware(opts.Credential, opts.Signer),
		contactLimiter:      opts.ContactLimit,
		loginLimiter:        opts.LoginLimit,
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
