package shift_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
)

func TestBestEffortCatalog_AsincronoSobreviveCancelacion(t *testing.T) {
	cat := &fakeCatalog{}
	c := appshift.NewBestEffortCatalog(cat, zerolog.Nop(), appshift.CatalogOptions{Async: true, Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	c.DecrementQuantity(ctx, "p1", 2)
	c.SetQuantity(ctx, "p2", 9)
	cancel()
	c.Wait()

	assert.ElementsMatch(t, []catalogCall{
		{Op: "decrement", ProductID: "p1", Value: 2},
		{Op: "set", ProductID: "p2", Value: 9},
	}, cat.Calls())
	assert.Zero(t, c.Failures())
}

func TestBestEffortCatalog_CuentaFallos(t *testing.T) {
	cat := &fakeCatalog{fail: true}
	c := appshift.NewBestEffortCatalog(cat, zerolog.Nop(), appshift.CatalogOptions{})

	c.SetQuantity(context.Background(), "p1", 1)
	c.DecrementQuantity(context.Background(), "p1", 1)
	assert.Equal(t, int64(2), c.Failures())
}

func TestBestEffortCatalog_NilEsNoOp(t *testing.T) {
	var c *appshift.BestEffortCatalog
	assert.NotPanics(t, func() {
		c.SetQuantity(context.Background(), "p1", 1)
	})

	noPort := appshift.NewBestEffortCatalog(nil, zerolog.Nop(), appshift.CatalogOptions{})
	assert.NotPanics(t, func() {
		noPort.DecrementQuantity(context.Background(), "p1", 1)
	})
}
