package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo. La existencia la ajusta el admin o el libro de turno.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Quantity:    in.Quantity,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    in.ImageURL,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos presentes del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = in.Cost
	}
	if in.Quantity != nil {
		product.Quantity = max(0, *in.Quantity)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.MinStock != nil {
		product.MinStock = max(0, *in.MinStock)
	}
	if product.Name == "" || product.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateQuantity fija la existencia; valores negativos quedan en 0.
func (uc *ProductUseCase) UpdateQuantity(ctx context.Context, id string, quantity int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Quantity = max(0, quantity)
	if err := uc.repo.SetQuantity(ctx, id, product.Quantity); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista el catálogo con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	stock := in.Stock
	if stock == "" {
		stock = repository.StockFilterAll
	}
	switch stock {
	case repository.StockFilterAll, repository.StockFilterLow, repository.StockFilterOut:
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:   strings.TrimSpace(in.Search),
		Category: in.Category,
		Stock:    stock,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Categories categorías distintas del catálogo.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.repo.Categories(ctx)
}

// LowStock productos en o por debajo de su mínimo, incluidos los agotados.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	low := make([]*entity.Product, 0)
	for _, p := range list {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return toProductResponses(low), nil
}

// Stats indicadores del catálogo: valor = Σ precio × existencia.
func (uc *ProductUseCase) Stats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryStatsResponse{TotalProducts: len(list), TotalValue: decimal.Zero}
	for _, p := range list {
		out.TotalStock += p.Quantity
		out.TotalValue = out.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.IsLowStock() {
			out.LowStockProducts++
		}
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Quantity:    p.Quantity,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		MinStock:    p.MinStock,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
