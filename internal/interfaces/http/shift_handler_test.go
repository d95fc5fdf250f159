package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Libro del turno
// ──────────────────────────────────────────────────────────────────────────────

func TestShiftHandler_VentaDeContadoYCredito(t *testing.T) {
	s := newTestServer(t)

	var entry dto.ShiftEntryResponse
	code := s.call(t, http.MethodPut, "/api/shift/entries/p1/initial", "user", map[string]int{"quantity": 10}, &entry)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 10, entry.Available)

	code = s.call(t, http.MethodPost, "/api/shift/entries/p1/sales", "user",
		dto.RecordSaleRequest{Quantity: 3, SaleType: "cash"}, &entry)
	require.Equal(t, http.StatusCreated, code)

	code = s.call(t, http.MethodPost, "/api/shift/entries/p1/sales", "user",
		dto.RecordSaleRequest{Quantity: 2, SaleType: "credit", RoomNumber: "204"}, &entry)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 3, entry.SoldCash)
	assert.Equal(t, 2, entry.SoldCredit)
	assert.Equal(t, 5, entry.Available)
	assert.Equal(t, []dto.CreditSaleResponse{{Quantity: 2, RoomNumber: "204"}}, entry.CreditSales)

	assert.Equal(t, 5, s.products.quantity("p1"), "el catálogo se actualiza de forma optimista")
}

func TestShiftHandler_ErroresDeVenta(t *testing.T) {
	s := newTestServer(t)
	var errResp dto.ErrorResponse

	code := s.call(t, http.MethodPost, "/api/shift/entries/p1/sales", "user",
		dto.RecordSaleRequest{Quantity: 11, SaleType: "cash"}, &errResp)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	code = s.call(t, http.MethodPost, "/api/shift/entries/p1/sales", "user",
		dto.RecordSaleRequest{Quantity: 0, SaleType: "cash"}, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_QUANTITY", errResp.Code)

	code = s.call(t, http.MethodPost, "/api/shift/entries/p1/sales", "user",
		dto.RecordSaleRequest{Quantity: 1, SaleType: "credit", RoomNumber: "   "}, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_ROOM_NUMBER", errResp.Code)

	code = s.call(t, http.MethodGet, "/api/shift/entries/nope", "user", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, code)

	var verr dto.ValidationErrorResponse
	code = s.call(t, http.MethodPost, "/api/shift/entries/p1/sales", "user",
		map[string]any{"quantity": 1, "sale_type": "fiado"}, &verr)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "oneof", verr.Fields["sale_type"])

	code = s.call(t, http.MethodPut, "/api/shift/entries/p1/initial", "user", map[string]any{}, &verr)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "required", verr.Fields["quantity"])
}

func TestShiftHandler_SinToken(t *testing.T) {
	s := newTestServer(t)
	code := s.call(t, http.MethodGet, "/api/shift/summary", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen y cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestShiftHandler_ResumenYCierre(t *testing.T) {
	s := newTestServer(t)

	var fin dto.FinalizeShiftResponse
	var errResp dto.ErrorResponse
	code := s.call(t, http.MethodPost, "/api/shift/finalize", "user", dto.FinalizeShiftRequest{Confirm: true}, &errResp)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "NOTHING_TO_FINALIZE", errResp.Code)

	s.call(t, http.MethodPost, "/api/shift/entries/p2/sales", "user", dto.RecordSaleRequest{Quantity: 2, SaleType: "cash"}, nil)

	var sum dto.ShiftSummaryResponse
	code = s.call(t, http.MethodGet, "/api/shift/summary", "user", nil, &sum)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, sum.TotalSold)
	assert.Equal(t, 8, sum.TotalInitial, "solo productos con libro")
	assert.Equal(t, "caja-1", sum.DeviceID)
	assert.Equal(t, "10000", sum.TotalSoldValue.String())

	code = s.call(t, http.MethodPost, "/api/shift/finalize", "user", dto.FinalizeShiftRequest{Confirm: false}, &fin)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "aborted", fin.State)
	assert.Nil(t, fin.HistoryTimestamp)

	code = s.call(t, http.MethodPost, "/api/shift/finalize", "admin", dto.FinalizeShiftRequest{Confirm: true}, &fin)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "finalized", fin.State)
	assert.NotNil(t, fin.HistoryTimestamp)
	assert.Len(t, s.store.Keys("shift_history_"), 1)

	code = s.call(t, http.MethodGet, "/api/shift/summary", "user", nil, &sum)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, sum.TotalSold)
	assert.Empty(t, sum.ProductsDetail)
}

func TestShiftHandler_PDFNoConfigurado(t *testing.T) {
	s := newTestServer(t)
	code := s.call(t, http.MethodGet, "/api/shift/summary.pdf", "user", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, code)
}
