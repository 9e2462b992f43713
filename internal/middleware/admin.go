package middleware

import (
	"dijital-backend/pkg/credential"
	jwtPkg "dijital-backend/pkg/jwt"
	"dijital-backend/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	AdminLocalsKey      = "admin"
	RoleAdmin           = "admin"
	MessageUnauthorized = "Yetkisiz erişim. Lütfen giriş yapın."
)

var errUnsupportedScheme = errors.New("unsupported authorization scheme")

type adminMiddleware struct {
	credential credential.ICredential
	signer     jwtPkg.ItfJWT
}

func newAdminMiddleware(cred credential.ICredential, signer jwtPkg.ItfJWT) *adminMiddleware {
	return &adminMiddleware{
		credential: cred,
		signer:     signer,
	}
}

// authenticate accepts "Basic base64(user:pass)" and "Bearer <jwt>" issued by
// the admin login and returns the admin username.
func (a *adminMiddleware) authenticate(header string) (string, error) {
	if a.credential == nil {
		return "", errors.New("admin credential not configured")
	}

	scheme, value, err := jwtPkg.SplitAuthorization(header)
	if err != nil {
		return "", err
	}

	switch scheme {
	case "basic":
		username, password, err := credential.ParseBasic(value)
		if err != nil {
			return "", err
		}
		if !a.credential.Match(username, password) {
			return "", errors.New("credential mismatch")
		}
		return username, nil

	case "bearer":
		if a.signer == nil {
			return "", errUnsupportedScheme
		}
		claims, err := a.signer.Verify(value)
		if err != nil {
			return "", err
		}
		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if role != RoleAdmin || sub != a.credential.Username() {
			return "", jwtPkg.ErrInvalidClaims
		}
		return sub, nil
	}

	return "", errUnsupportedScheme
}

func (m *middleware) NewAdminMiddleware(ctx *fiber.Ctx) error {
	username, err := m.admin.authenticate(ctx.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"method":     ctx.Method(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Admin authentication failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(response.Failure(MessageUnauthorized))
	}

	ctx.Locals(AdminLocalsKey, username)

	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"admin":      username,
	}).Debug("Admin authentication successful")
	return ctx.Next()
}
