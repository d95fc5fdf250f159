package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Description string           `json:"description" validate:"max=1000"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Quantity    int              `json:"quantity" validate:"min=0"`
	Category    string           `json:"category" validate:"required,min=1,max=100"`
	ImageURL    string           `json:"image_url" validate:"omitempty,url"`
	MinStock    int              `json:"min_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Quantity    *int             `json:"quantity" validate:"omitempty,min=0"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=100"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
}

// UpdateQuantityRequest ajuste directo de existencia (admin).
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ProductListRequest filtros del listado.
type ProductListRequest struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
	Stock    string `query:"stock" validate:"omitempty,oneof=all low out"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Quantity    int              `json:"quantity"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
	MinStock    int              `json:"min_stock"`
	LowStock    bool             `json:"low_stock"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// InventoryStatsResponse indicadores del catálogo.
type InventoryStatsResponse struct {
	TotalProducts    int             `json:"total_products"`
	TotalStock       int             `json:"total_stock"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LowStockProducts int             `json:"low_stock_products"`
}
