package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Turno
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrMissingRoomNumber = errors.New("número de habitación requerido para venta a crédito")
	ErrPersistence       = errors.New("error de persistencia del turno")
	ErrPartialFinalize   = errors.New("turno finalizado parcialmente")
	ErrNothingToFinalize = errors.New("no hay ventas en el turno")
	ErrInvalidTransition = errors.New("transición de cierre de turno inválida")
	ErrLedgerBusy        = errors.New("libro del turno ocupado por otra operación")
)

// PartialFinalizeError el snapshot quedó guardado pero algunas entradas del libro no se borraron.
// errors.Is(err, ErrPartialFinalize) es verdadero.
type PartialFinalizeError struct {
	Remaining []string // product ids cuyo libro sigue presente
	Err       error    // primer error de borrado
}

func (e *PartialFinalizeError) Error() string {
	return fmt.Sprintf("%s: %d producto(s) sin limpiar [%s]: %v",
		ErrPartialFinalize.Error(), len(e.Remaining), strings.Join(e.Remaining, ", "), e.Err)
}

func (e *PartialFinalizeError) Is(target error) bool {
	return target == ErrPartialFinalize
}

func (e *PartialFinalizeError) Unwrap() error {
	return e.Err
}
