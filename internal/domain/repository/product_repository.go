package repository

import (
	"context"

	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// Filtros de existencia para el listado del catálogo.
const (
	StockFilterAll = "all"
	StockFilterLow = "low" // 0 < quantity <= min_stock
	StockFilterOut = "out" // quantity = 0
)

// ProductFilter filtros del listado. Limit 0 = sin límite.
type ProductFilter struct {
	Search   string // nombre o descripción, sin distinguir mayúsculas
	Category string
	Stock    string
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	SetQuantity(ctx context.Context, productID string, value int) error
	DecrementQuantity(ctx context.Context, productID string, amount int) error
	Delete(ctx context.Context, id string) error
}
