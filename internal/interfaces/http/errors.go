package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
)

// errorMapping traduce un error de dominio a estado HTTP y código. El orden importa:
// un error de validación que envuelve una falla remota se reporta como validación.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION_FAILED"},
	{domain.ErrConcurrencyConflict, fiber.StatusConflict, "CONCURRENCY_CONFLICT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidParticipant, fiber.StatusUnprocessableEntity, "INVALID_PARTICIPANT"},
	{domain.ErrInvalidRepresentative, fiber.StatusUnprocessableEntity, "INVALID_REPRESENTATIVE"},
	{domain.ErrRemoteValidationFailed, fiber.StatusUnprocessableEntity, "REMOTE_VALIDATION_FAILED"},
	{domain.ErrRemoteNotFound, fiber.StatusFailedDependency, "REMOTE_NOT_FOUND"},
	{domain.ErrExternalServiceUnavailable, fiber.StatusServiceUnavailable, "EXTERNAL_SERVICE_UNAVAILABLE"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// statusFor devuelve el estado y el código para err; 500 INTERNAL si no es un error conocido.
func statusFor(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, "HTTP_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse. Los errores internos se registran y no se exponen.
func writeError(c *fiber.Ctx, err error) error {
	return writeErrorFor(c, err, "")
}

// writeErrorFor como writeError, informando el recurso que quedó persistido.
func writeErrorFor(c *fiber.Ctx, err error, resourceID string) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg, ResourceID: resourceID})
}

// ErrorHandler manejador de errores de Fiber para errores no capturados por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
