package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/domain"
)

// respondError traduce errores de dominio a status y código. Lo no reconocido es 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "INVALID_QUANTITY"
	case errors.Is(err, domain.ErrMissingRoomNumber):
		status, code = fiber.StatusBadRequest, "MISSING_ROOM_NUMBER"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNothingToFinalize):
		status, code = fiber.StatusConflict, "NOTHING_TO_FINALIZE"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrLedgerBusy):
		status, code = fiber.StatusConflict, "LEDGER_BUSY"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrPartialFinalize):
		status, code = fiber.StatusMultiStatus, "PARTIAL_FINALIZE"
	case errors.Is(err, domain.ErrPersistence):
		status, code = fiber.StatusInternalServerError, "PERSISTENCE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
