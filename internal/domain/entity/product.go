package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del local.
// Quantity es la existencia autoritativa entre turnos y dispositivos; el libro de turno
// solo la actualiza de forma optimista.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal  // precio de venta
	Cost        *decimal.Decimal // costo opcional (margen)
	Quantity    int
	Category    string
	ImageURL    string
	MinStock    int // umbral de stock bajo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock stock en o por debajo del mínimo.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// IsOutOfStock sin existencias.
func (p Product) IsOutOfStock() bool {
	return p.Quantity == 0
}
