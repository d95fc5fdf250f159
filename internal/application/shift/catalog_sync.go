package shift

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// CatalogOptions política de las escrituras al catálogo.
type CatalogOptions struct {
	Async   bool          // true: no se espera la escritura; Wait() drena las pendientes
	Timeout time.Duration // límite por escritura
}

// BestEffortCatalog envuelve CatalogQuantityPort: los fallos se registran y cuentan,
// nunca se propagan al resultado del libro.
type BestEffortCatalog struct {
	port     CatalogQuantityPort
	log      zerolog.Logger
	opts     CatalogOptions
	wg       sync.WaitGroup
	failures atomic.Int64
}

// NewBestEffortCatalog construye el adaptador. port nil = sin sincronización.
func NewBestEffortCatalog(port CatalogQuantityPort, log zerolog.Logger, opts CatalogOptions) *BestEffortCatalog {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &BestEffortCatalog{port: port, log: log, opts: opts}
}

// SetQuantity fija la existencia del catálogo (inicio de turno).
func (c *BestEffortCatalog) SetQuantity(ctx context.Context, productID string, value int) {
	c.run(ctx, "set_quantity", productID, value, func(ctx context.Context) error {
		return c.port.SetQuantity(ctx, productID, value)
	})
}

// DecrementQuantity descuenta una venta de la existencia del catálogo.
func (c *BestEffortCatalog) DecrementQuantity(ctx context.Context, productID string, amount int) {
	c.run(ctx, "decrement_quantity", productID, amount, func(ctx context.Context) error {
		return c.port.DecrementQuantity(ctx, productID, amount)
	})
}

// Failures número de escrituras fallidas desde el arranque.
func (c *BestEffortCatalog) Failures() int64 {
	return c.failures.Load()
}

// Wait espera las escrituras asíncronas pendientes (apagado ordenado).
func (c *BestEffortCatalog) Wait() {
	c.wg.Wait()
}

func (c *BestEffortCatalog) run(ctx context.Context, op, productID string, value int, fn func(context.Context) error) {
	if c == nil || c.port == nil {
		return
	}
	exec := func(parent context.Context) {
		opCtx, cancel := context.WithTimeout(parent, c.opts.Timeout)
		defer cancel()
		if err := fn(opCtx); err != nil {
			c.failures.Add(1)
			c.log.Warn().Err(err).
				Str("op", op).
				Str("product_id", productID).
				Int("value", value).
				Msg("catálogo no sincronizado; el libro del turno sigue siendo válido")
		}
	}
	if !c.opts.Async {
		exec(ctx)
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		exec(context.WithoutCancel(ctx))
	}()
}
