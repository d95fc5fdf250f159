package http_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
)

func TestProductHandler_EscrituraSoloAdmin(t *testing.T) {
	s := newTestServer(t)
	in := dto.CreateProductRequest{Name: "Papas", Category: "snacks", Price: decimal.NewFromInt(3000), Quantity: 4}

	code := s.call(t, http.MethodPost, "/api/products", "user", in, nil)
	assert.Equal(t, http.StatusForbidden, code)

	var out dto.ProductResponse
	code = s.call(t, http.MethodPost, "/api/products", "admin", in, &out)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Papas", out.Name)
}

func TestProductHandler_Lecturas(t *testing.T) {
	s := newTestServer(t)

	var list dto.ProductListResponse
	code := s.call(t, http.MethodGet, "/api/products?limit=10", "user", nil, &list)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 10, list.Page.Limit)

	var stats dto.InventoryStatsResponse
	code = s.call(t, http.MethodGet, "/api/products/stats", "user", nil, &stats)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 18, stats.TotalStock)
	assert.Equal(t, "60000", stats.TotalValue.String())

	var p dto.ProductResponse
	code = s.call(t, http.MethodGet, "/api/products/p2", "user", nil, &p)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cerveza", p.Name)

	var verr dto.ValidationErrorResponse
	code = s.call(t, http.MethodGet, "/api/products?stock=raro", "user", nil, &verr)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "oneof", verr.Fields["stock"])
}

func TestProductHandler_AjusteDeExistencia(t *testing.T) {
	s := newTestServer(t)

	var out dto.ProductResponse
	code := s.call(t, http.MethodPatch, "/api/products/p1/quantity", "admin", dto.UpdateQuantityRequest{Quantity: -3}, &out)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, 0, s.products.quantity("p1"))
}
