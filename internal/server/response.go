package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// SuccessEnvelope wraps every successful response body.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope wraps every error response body.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func success(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func failure(c *fiber.Ctx, code int, message string, details any) error {
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(ErrorEnvelope{
		Success: false,
		Message: message,
		Details: details,
	})
}

// errorHandler renders errors that escape a handler, including fiber's own
// (404, 405, 413), in the error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	message := err.Error()
	if message == "" {
		message = "Internal Server Error"
	}
	return failure(c, code, message, nil)
}
