package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
)

func TestBuildListQuery_SinFiltros(t *testing.T) {
	q, args := buildListQuery(repository.ProductFilter{})
	assert.Equal(t, "SELECT "+productColumns+" FROM products ORDER BY name, id", q)
	assert.Empty(t, args)
}

func TestBuildListQuery_Filtros(t *testing.T) {
	q, args := buildListQuery(repository.ProductFilter{
		Search: "agua", Category: "bebidas", Stock: repository.StockFilterLow, Limit: 20, Offset: 40,
	})
	assert.Contains(t, q, "(name ILIKE $1 OR description ILIKE $1)")
	assert.Contains(t, q, "category = $2")
	assert.Contains(t, q, "quantity > 0 AND quantity <= min_stock")
	assert.Contains(t, q, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{"%agua%", "bebidas", 20, 40}, args)
}

func TestBuildListQuery_Agotados(t *testing.T) {
	q, args := buildListQuery(repository.ProductFilter{Stock: repository.StockFilterOut})
	assert.Contains(t, q, "WHERE quantity = 0")
	assert.Empty(t, args)
}
