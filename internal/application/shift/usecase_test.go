package shift_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

type fakePDF struct{ deviceID string }

func (g *fakePDF) GenerateShiftSummaryPDF(_ context.Context, _ entity.ShiftSummary, deviceID string) ([]byte, error) {
	g.deviceID = deviceID
	return []byte("%PDF-1.4"), nil
}

func newUseCase(f *fixture, pdf appshift.SummaryPDFGenerator) (*appshift.UseCase, *fakeProducts) {
	repo := &fakeProducts{}
	for _, p := range catalogProducts() {
		p := p
		repo.list = append(repo.list, &p)
	}
	return appshift.NewUseCase(repo, f.ledger, f.agg, pdf), repo
}

func TestUseCase_GetEntry_ProductoInexistente(t *testing.T) {
	uc, _ := newUseCase(newFixture(), nil)

	_, err := uc.GetEntry(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetEntry(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUseCase_GetEntry_SinLibroUsaCatalogo(t *testing.T) {
	uc, _ := newUseCase(newFixture(), nil)

	e, err := uc.GetEntry(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Cerveza", e.ProductName)
	assert.Equal(t, 8, e.InitialQuantity)
	assert.Equal(t, 8, e.Available)
	assert.Empty(t, e.CreditSales)
}

func TestUseCase_RecordSale_Escenario(t *testing.T) {
	f := newFixture()
	uc, _ := newUseCase(f, nil)
	ctx := context.Background()

	_, err := uc.SetInitialQuantity(ctx, "p1", 10)
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, "p1", dto.RecordSaleRequest{Quantity: 3, SaleType: entity.SaleTypeCash})
	require.NoError(t, err)
	e, err := uc.RecordSale(ctx, "p1", dto.RecordSaleRequest{Quantity: 2, SaleType: entity.SaleTypeCredit, RoomNumber: "204"})
	require.NoError(t, err)

	assert.Equal(t, 5, e.Available)
	require.Len(t, e.CreditSales, 1)
	assert.Equal(t, dto.CreditSaleResponse{Quantity: 2, RoomNumber: "204"}, e.CreditSales[0])

	_, err = uc.RecordSale(ctx, "p1", dto.RecordSaleRequest{Quantity: 6, SaleType: entity.SaleTypeCash})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUseCase_SetInitialQuantity_Negativa(t *testing.T) {
	uc, _ := newUseCase(newFixture(), nil)
	_, err := uc.SetInitialQuantity(context.Background(), "p1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUseCase_Summary(t *testing.T) {
	f := newFixture()
	uc, _ := newUseCase(f, nil)
	sell(t, f, "p1", 1, entity.SaleTypeCash, "")
	sell(t, f, "p2", 2, entity.SaleTypeCash, "")

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "caja-1", s.DeviceID)
	assert.Equal(t, 2, s.ProductsWithSales)
	assert.Equal(t, "p2", s.ProductsDetail[0].ProductID, "más vendido primero")
}

func TestUseCase_Summary_ErrorCatalogo(t *testing.T) {
	uc, repo := newUseCase(newFixture(), nil)
	repo.err = errors.New("db caída")

	_, err := uc.Summary(context.Background())
	assert.Error(t, err)
}

func TestUseCase_SummaryPDF(t *testing.T) {
	pdf := &fakePDF{}
	uc, _ := newUseCase(newFixture(), pdf)

	out, err := uc.SummaryPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
	assert.Equal(t, "caja-1", pdf.deviceID)

	noPDF, _ := newUseCase(newFixture(), nil)
	_, err = noPDF.SummaryPDF(context.Background())
	assert.Error(t, err)
}

func TestUseCase_Finalize_SinConfirmarSoloRevisa(t *testing.T) {
	f := newFixture()
	uc, _ := newUseCase(f, nil)
	sell(t, f, "p1", 1, entity.SaleTypeCash, "")

	out, err := uc.Finalize(context.Background(), appshift.FinalizeMeta{}, false)
	require.NoError(t, err)
	assert.Equal(t, "aborted", out.State)
	assert.Nil(t, out.HistoryTimestamp)
	assert.Equal(t, 1, out.Summary.TotalSold)
	assert.Equal(t, 1, f.ledger.GetEntry(context.Background(), "p1", 0).SoldCash)
}

func TestUseCase_Finalize_Confirmado(t *testing.T) {
	f := newFixture()
	uc, _ := newUseCase(f, nil)
	sell(t, f, "p1", 1, entity.SaleTypeCash, "")

	out, err := uc.Finalize(context.Background(), appshift.FinalizeMeta{UserID: "u1"}, true)
	require.NoError(t, err)
	assert.Equal(t, "finalized", out.State)
	require.NotNil(t, out.HistoryTimestamp)
	assert.Equal(t, fixedNow, *out.HistoryTimestamp)
	assert.Empty(t, out.RemainingProducts)

	_, err = uc.Finalize(context.Background(), appshift.FinalizeMeta{}, true)
	assert.ErrorIs(t, err, domain.ErrNothingToFinalize, "el turno ya quedó vacío")
}

func TestUseCase_Finalize_Parcial(t *testing.T) {
	f := newFixture()
	uc, _ := newUseCase(f, nil)
	sell(t, f, "p1", 1, entity.SaleTypeCash, "")
	sell(t, f, "p2", 1, entity.SaleTypeCash, "")
	f.store.failDelete[appshift.EntryKey("p1")] = true

	out, err := uc.Finalize(context.Background(), appshift.FinalizeMeta{}, true)
	assert.ErrorIs(t, err, domain.ErrPartialFinalize)
	require.NotNil(t, out)
	assert.Equal(t, []string{"p1"}, out.RemainingProducts)
}
