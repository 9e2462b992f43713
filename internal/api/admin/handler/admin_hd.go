package adminHandler

import (
	"dijital-backend/internal/api/admin"
	contextPkg "dijital-backend/pkg/context"
	"dijital-backend/pkg/handlerUtil"
	"dijital-backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

func (h *AdminHandler) HandleLogin(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	// Malformed or incomplete bodies get the same answer as a wrong password.
	var req admin.LoginRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, admin.ErrInvalidCredentials, ctx.Path(), "admin_login")
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.Handle(ctx, requestID, admin.ErrInvalidCredentials, ctx.Path(), "admin_login")
	}

	result, err := h.adminService.Login(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "admin_login")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response.Success(admin.MessageLoginSuccess, result))
	}
}
