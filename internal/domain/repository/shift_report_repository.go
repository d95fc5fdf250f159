package repository

import (
	"context"

	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// ShiftReportRepository tabla shifts del servidor, escrita al cerrar un turno y leída por el visor de administración.
type ShiftReportRepository interface {
	Create(ctx context.Context, report *entity.ShiftReport) error
	List(ctx context.Context, userID string, limit, offset int) ([]*entity.ShiftReport, error)
}
