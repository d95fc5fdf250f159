// Package shift implementa el libro de turno por dispositivo (Ledger), su agregación y el cierre
// (Aggregator, FinalizeFlow), y el caso de uso que los expone a la capa HTTP.
package shift

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	domainshift "github.com/jhoicas/inventario-turnos/internal/domain/shift"
)

// SaleInput datos de una venta. CatalogQuantity es el inicial por defecto si el producto no tiene libro.
type SaleInput struct {
	ProductID       string
	Quantity        int
	Type            string // cash | credit
	RoomNumber      string
	CatalogQuantity int
}

// Ledger mantiene el estado del turno por producto en el KVStore del dispositivo.
// Las escrituras de un producto se serializan con Locker (leer, validar y guardar es un solo paso).
type Ledger struct {
	store   KVStore
	catalog *BestEffortCatalog
	locker  Locker
	log     zerolog.Logger
}

// LedgerOption configura el Ledger.
type LedgerOption func(*Ledger)

// WithLocker reemplaza el LocalLocker por defecto (p. ej. lock en Redis compartido entre procesos).
func WithLocker(locker Locker) LedgerOption {
	return func(l *Ledger) { l.locker = locker }
}

// NewLedger construye el libro. catalog puede ser nil (sin sincronización con el catálogo).
func NewLedger(store KVStore, catalog *BestEffortCatalog, log zerolog.Logger, opts ...LedgerOption) *Ledger {
	l := &Ledger{store: store, catalog: catalog, log: log}
	for _, o := range opts {
		o(l)
	}
	if l.locker == nil {
		l.locker = NewLocalLocker()
	}
	return l
}

// GetEntry devuelve la entrada guardada o DefaultEntry(fallbackInitial). Nunca falla:
// un error de lectura o JSON corrupto degrada al valor por defecto.
func (l *Ledger) GetEntry(ctx context.Context, productID string, fallbackInitial int) entity.ShiftEntry {
	e, ok := l.lookup(ctx, productID)
	if !ok {
		return domainshift.DefaultEntry(fallbackInitial)
	}
	return e
}

// Available disponibilidad de una entrada.
func (l *Ledger) Available(e entity.ShiftEntry) int {
	return domainshift.Available(e)
}

// SetInitialQuantity inicia el turno del producto: inicial = quantity y ventas a cero.
func (l *Ledger) SetInitialQuantity(ctx context.Context, productID string, quantity int) (entity.ShiftEntry, error) {
	if quantity < 0 {
		return entity.ShiftEntry{}, domain.ErrInvalidQuantity
	}
	unlock, err := l.lockProduct(ctx, productID)
	if err != nil {
		return entity.ShiftEntry{}, err
	}
	defer unlock()

	e := domainshift.DefaultEntry(quantity)
	if err := l.put(ctx, productID, e); err != nil {
		return entity.ShiftEntry{}, err
	}
	l.catalog.SetQuantity(ctx, productID, quantity)
	return e, nil
}

// RecordSale registra una venta de contado o a crédito. Si falla una precondición el libro no cambia.
func (l *Ledger) RecordSale(ctx context.Context, in SaleInput) (entity.ShiftEntry, error) {
	unlock, err := l.lockProduct(ctx, in.ProductID)
	if err != nil {
		return entity.ShiftEntry{}, err
	}
	defer unlock()

	current := l.GetEntry(ctx, in.ProductID, in.CatalogQuantity)
	if err := domainshift.ValidateSale(current, in.Quantity, in.Type, in.RoomNumber); err != nil {
		return current, err
	}
	next := domainshift.ApplySale(current, in.Quantity, in.Type, in.RoomNumber)
	if err := l.put(ctx, in.ProductID, next); err != nil {
		return current, err
	}
	l.catalog.DecrementQuantity(ctx, in.ProductID, in.Quantity)

	l.log.Debug().
		Str("product_id", in.ProductID).
		Str("type", in.Type).
		Int("quantity", in.Quantity).
		Int("available", domainshift.Available(next)).
		Msg("venta registrada")
	return next, nil
}

// Reset borra la entrada del producto (siguiente lectura vuelve al catálogo).
func (l *Ledger) Reset(ctx context.Context, productID string) error {
	unlock, err := l.lockProduct(ctx, productID)
	if err != nil {
		return err
	}
	defer unlock()
	return l.reset(ctx, productID)
}

// reset sin lock; el llamador ya lo tiene.
func (l *Ledger) reset(ctx context.Context, productID string) error {
	if err := l.store.Delete(ctx, EntryKey(productID)); err != nil {
		return fmt.Errorf("%w: borrar %s: %w", domain.ErrPersistence, EntryKey(productID), err)
	}
	return nil
}

// lookup lee la entrada; ok=false si no existe o no se puede leer.
func (l *Ledger) lookup(ctx context.Context, productID string) (entity.ShiftEntry, bool) {
	key := EntryKey(productID)
	raw, found, err := l.store.Get(ctx, key)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("lectura del libro fallida; se usa el valor por defecto")
		return entity.ShiftEntry{}, false
	}
	if !found {
		return entity.ShiftEntry{}, false
	}
	var e entity.ShiftEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("entrada del libro corrupta; se usa el valor por defecto")
		return entity.ShiftEntry{}, false
	}
	return domainshift.Normalize(e), true
}

func (l *Ledger) put(ctx context.Context, productID string, e entity.ShiftEntry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: codificar entrada: %w", domain.ErrPersistence, err)
	}
	if err := l.store.Set(ctx, EntryKey(productID), raw); err != nil {
		return fmt.Errorf("%w: guardar %s: %w", domain.ErrPersistence, EntryKey(productID), err)
	}
	return nil
}
