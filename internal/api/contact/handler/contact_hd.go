package contactHandler

import (
	"dijital-backend/internal/api/contact"
	contextPkg "dijital-backend/pkg/context"
	"dijital-backend/pkg/handlerUtil"
	"dijital-backend/pkg/log"
	"dijital-backend/pkg/response"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func (h *ContactHandler) SendContact(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := contextPkg.WithTimeout(ctx)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing contact request")

	var req contact.ContactRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, contact.MessageMissingFields, err, ctx.Path())
		}
	}
	req = req.Normalize()

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, validationMessage(err), err, ctx.Path())
	}

	if err := h.contactService.SendContactMessage(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send_contact")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, response.Success(contact.MessageSent, nil))
}

// validationMessage reports missing fields before a malformed email.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return contact.MessageMissingFields
	}

	for _, fe := range fieldErrs {
		if fe.Tag() != "contactemail" {
			return contact.MessageMissingFields
		}
	}

	return contact.MessageInvalidEmail
}
