package shift_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

func TestFinalizeFlow_SinVentasNoEntraEnRevision(t *testing.T) {
	f := newFixture()
	flow := appshift.NewFinalizeFlow(f.agg, catalogProducts(), appshift.FinalizeMeta{})

	_, err := flow.Review(context.Background())
	assert.ErrorIs(t, err, domain.ErrNothingToFinalize)
	assert.Equal(t, appshift.StateIdle, flow.State())
	assert.ErrorIs(t, flow.Confirm(), domain.ErrInvalidTransition)
}

func TestFinalizeFlow_CaminoCompleto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sell(t, f, "p1", 2, entity.SaleTypeCash, "")
	flow := appshift.NewFinalizeFlow(f.agg, catalogProducts(), appshift.FinalizeMeta{UserID: "u1"})

	s, err := flow.Review(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalSold)
	assert.Equal(t, appshift.StateReviewing, flow.State())

	_, err = flow.Finalize(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se finaliza sin confirmar")

	require.NoError(t, flow.Confirm())
	assert.Equal(t, appshift.StateConfirming, flow.State())

	rec, err := flow.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, appshift.StateFinalized, flow.State())
	assert.Same(t, rec, flow.Record())

	assert.ErrorIs(t, flow.Abort(), domain.ErrInvalidTransition, "Finalized es terminal")
	_, err = flow.Review(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFinalizeFlow_AbortarNoTieneEfectos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sell(t, f, "p1", 1, entity.SaleTypeCash, "")
	flow := appshift.NewFinalizeFlow(f.agg, catalogProducts(), appshift.FinalizeMeta{})

	_, err := flow.Review(ctx)
	require.NoError(t, err)
	require.NoError(t, flow.Confirm())
	require.NoError(t, flow.Abort())

	assert.Equal(t, appshift.StateAborted, flow.State())
	assert.Empty(t, f.store.Keys("shift_history_"))
	assert.Equal(t, 1, f.ledger.GetEntry(ctx, "p1", 0).SoldCash)
	_, err = flow.Finalize(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestFinalizeFlow_FalloDeSnapshotPermiteReintentar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sell(t, f, "p1", 1, entity.SaleTypeCash, "")
	flow := appshift.NewFinalizeFlow(f.agg, catalogProducts(), appshift.FinalizeMeta{})
	_, err := flow.Review(ctx)
	require.NoError(t, err)
	require.NoError(t, flow.Confirm())

	f.store.failSetNX = true
	_, err = flow.Finalize(ctx)
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, appshift.StateConfirming, flow.State())

	f.store.failSetNX = false
	_, err = flow.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, appshift.StateFinalized, flow.State())
}

func TestFinalizeState_String(t *testing.T) {
	assert.Equal(t, "reviewing", appshift.StateReviewing.String())
	assert.Equal(t, "FinalizeState(42)", appshift.FinalizeState(42).String())
}
