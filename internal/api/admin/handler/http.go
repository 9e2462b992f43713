package adminHandler

import (
	adminService "dijital-backend/internal/api/admin/service"
	"dijital-backend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	adminService adminService.IAdminService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as adminService.IAdminService,
) *AdminHandler {
	return &AdminHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		adminService: as,
	}
}

func (h *AdminHandler) Start(srv fiber.Router) {
	admin := srv.Group("/admin")
	admin.Post("/login", h.middleware.NewLoginRateLimiter, h.HandleLogin)
}
