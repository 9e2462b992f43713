package handlerUtil

import (
	"dijital-backend/pkg/log"
	"dijital-backend/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	MessageInternalError  = "Sunucu hatası oluştu"
	MessageRequestTimeout = "İstek zaman aşımına uğradı"
	MessageUnauthorized   = "Yetkisiz erişim"
	MessageInvalidBody    = "Geçersiz istek gövdesi"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes err as an envelope. Domain errors keep their status code and
// message; anything else becomes a generic 500 tagged with a trace id.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		entry := h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		})
		if respErr.Code >= fiber.StatusInternalServerError {
			entry.Error("Operation failed with error response")
		} else {
			entry.Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(response.Failure(respErr.Error()))
	}

	traceID := log.ErrorWithTraceID(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}, "Unexpected error")

	c.Set("X-Trace-ID", traceID)
	return c.Status(fiber.StatusInternalServerError).JSON(response.Failure(MessageInternalError))
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, message string, err error, path string) error {
	fields := log.Fields{
		"request_id": requestID,
		"path":       path,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	h.logger.WithFields(fields).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(response.Failure(message))
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(response.Failure(MessageRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(response.Failure(message))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, body interface{}) error {
	if body == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(body)
}

// FiberErrorHandler is the app wide catch-all for errors that escaped a
// handler, including recovered panics.
func FiberErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := MessageInternalError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			if code < fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
		}

		requestID, _ := c.Locals("X-Request-ID").(string)
		if code >= fiber.StatusInternalServerError {
			log.ErrorWithTraceID(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
				"path":       c.Path(),
				"method":     c.Method(),
			}, "Server Error")
		} else {
			logger.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
				"path":       c.Path(),
			}).Warn("Request failed")
		}

		return c.Status(code).JSON(response.Failure(message))
	}
}
