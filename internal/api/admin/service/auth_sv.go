package adminService

import (
	"dijital-backend/internal/api/admin"
	"dijital-backend/internal/middleware"
	contextPkg "dijital-backend/pkg/context"
	"dijital-backend/pkg/credential"
	jwtPkg "dijital-backend/pkg/jwt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAdminService interface {
	Login(ctx context.Context, req admin.LoginRequest) (admin.LoginResponse, error)
}

type adminService struct {
	log        *logrus.Logger
	credential credential.ICredential
	signer     jwtPkg.ItfJWT
}

func NewAdminService(log *logrus.Logger, cred credential.ICredential, signer jwtPkg.ItfJWT) IAdminService {
	return &adminService{
		log:        log,
		credential: cred,
		signer:     signer,
	}
}

func (s *adminService) Login(ctx context.Context, req admin.LoginRequest) (admin.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(req.Username) == "" || req.Password == "" || !s.credential.Match(req.Username, req.Password) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Admin login rejected")
		return admin.LoginResponse{}, admin.ErrInvalidCredentials
	}

	token, expiresAt, err := s.signer.Sign(s.credential.Username(), map[string]interface{}{
		"role": middleware.RoleAdmin,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign admin token")
		return admin.LoginResponse{}, admin.ErrIssueToken
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"username":   req.Username,
	}).Info("Admin logged in")

	return admin.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}
