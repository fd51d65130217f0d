package response

import (
	"errors"

	apperrors "ledger/internal/errors"
	"ledger/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return JSON(c, fiber.StatusOK, message, data)
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return JSON(c, fiber.StatusCreated, message, data)
}

func Accepted(c *fiber.Ctx, message string, data interface{}) error {
	return JSON(c, fiber.StatusAccepted, message, data)
}

func JSON(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationError reports the first field error and lists all of them.
func ValidationError(c *fiber.Ctx, v *validation.Validator) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  v.Message(),
		"fields": v.Errors,
	})
}

// DomainError writes err with the status its code maps to. Errors that carry no
// domain code are reported as internal errors without leaking their text.
func DomainError(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		return ServerError(c, "internal server error")
	}
	return c.Status(StatusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
		"code":  domainErr.Code,
	})
}

// StatusFor maps a domain error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrTimeout):
		return fiber.StatusServiceUnavailable
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
