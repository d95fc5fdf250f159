package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ appshift.CatalogQuantityPort = (*ProductRepo)(nil)
)

const productColumns = `id, name, description, price, cost, quantity, category, image_url, min_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Cost, p.Quantity, p.Category, p.ImageURL, p.MinStock,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, cost = $5, quantity = $6,
			category = $7, image_url = $8, min_stock = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Cost, p.Quantity, p.Category, p.ImageURL, p.MinStock, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo ordenado por nombre aplicando los filtros.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query, args := buildListQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func buildListQuery(f repository.ProductFilter) (string, []any) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Search != "" {
		p := arg(likePattern(f.Search))
		where = append(where, "(name ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	switch f.Stock {
	case repository.StockFilterLow:
		where = append(where, "quantity > 0 AND quantity <= min_stock")
	case repository.StockFilterOut:
		where = append(where, "quantity = 0")
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + productColumns + ` FROM products`)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY name, id")
	if f.Limit > 0 {
		b.WriteString(" LIMIT " + arg(f.Limit))
	}
	if f.Offset > 0 {
		b.WriteString(" OFFSET " + arg(f.Offset))
	}
	return b.String(), args
}

// Categories categorías distintas, en orden alfabético.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetQuantity fija la existencia (inicio de turno o ajuste de admin).
func (r *ProductRepo) SetQuantity(ctx context.Context, productID string, value int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = GREATEST($2, 0), updated_at = NOW() WHERE id = $1`,
		productID, value)
	if err != nil {
		return fmt.Errorf("set product quantity: %w", err)
	}
	return nil
}

// DecrementQuantity resta en la base sin leer antes; nunca baja de 0.
func (r *ProductRepo) DecrementQuantity(ctx context.Context, productID string, amount int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = GREATEST(quantity - $2, 0), updated_at = NOW() WHERE id = $1`,
		productID, amount)
	if err != nil {
		return fmt.Errorf("decrement product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Quantity, &p.Category, &p.ImageURL,
		&p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
