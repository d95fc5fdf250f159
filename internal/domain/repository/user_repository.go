package repository

import (
	"context"

	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
}
