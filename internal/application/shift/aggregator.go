package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	domainshift "github.com/jhoicas/inventario-turnos/internal/domain/shift"
)

// FinalizeMeta quién cierra el turno.
type FinalizeMeta struct {
	UserID    string
	UserEmail string
}

// Aggregator reduce el libro de todo el catálogo a un resumen y ejecuta el cierre.
type Aggregator struct {
	ledger    *Ledger
	history   HistoryStore
	reporters []ShiftReporter
	reportTTL time.Duration
	deviceID  string
	now       func() time.Time
	log       zerolog.Logger
}

// AggregatorOption configura el Aggregator.
type AggregatorOption func(*Aggregator)

// WithReporters agrega receptores best-effort del turno cerrado.
func WithReporters(r ...ShiftReporter) AggregatorOption {
	return func(a *Aggregator) { a.reporters = append(a.reporters, r...) }
}

// WithReportTimeout tope conjunto de los reporters tras el cierre (por defecto 5s).
func WithReportTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.reportTTL = d
		}
	}
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

// WithDeviceID identifica la caja en los registros de cierre.
func WithDeviceID(id string) AggregatorOption {
	return func(a *Aggregator) { a.deviceID = id }
}

// NewAggregator construye el agregador.
func NewAggregator(ledger *Ledger, history HistoryStore, log zerolog.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{ledger: ledger, history: history, reportTTL: 5 * time.Second, now: time.Now, log: log}
	for _, o := range opts {
		o(a)
	}
	return a
}

// DeviceID caja a la que pertenece el libro.
func (a *Aggregator) DeviceID() string {
	return a.deviceID
}

// Summarize resumen del turno en curso. Solo lee.
func (a *Aggregator) Summarize(ctx context.Context, products []entity.Product) entity.ShiftSummary {
	return domainshift.Summarize(products, a.collect(ctx, products), a.now())
}

// Finalize guarda el snapshot y luego limpia el libro de cada producto, con el libro de todos
// los productos bloqueado: ninguna venta cae entre la lectura y el borrado.
// Si el snapshot falla no se limpia nada. Si la limpieza falla a medias se devuelve el registro
// junto con *domain.PartialFinalizeError; los productos pendientes no se reportan.
func (a *Aggregator) Finalize(ctx context.Context, products []entity.Product, meta FinalizeMeta) (*entity.ShiftHistoryRecord, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	unlock, err := a.ledger.lockAll(ctx, ids)
	if err != nil {
		return nil, err
	}
	record, entries, key, partial, err := a.snapshotAndClear(ctx, products, meta)
	unlock()
	if err != nil {
		return nil, err
	}

	reported := products
	if partial != nil {
		reported = excluding(products, partial.Remaining)
	}
	a.report(ctx, *record, domainshift.Summarize(reported, entries, record.Timestamp), reported, meta)

	if partial != nil {
		a.log.Error().Err(partial).Str("history_key", key).Msg("turno finalizado parcialmente")
		return record, partial
	}
	a.log.Info().
		Str("history_key", key).
		Int("products", len(products)).
		Msg("turno finalizado")
	return record, nil
}

// snapshotAndClear requiere los locks de todos los productos.
func (a *Aggregator) snapshotAndClear(ctx context.Context, products []entity.Product, meta FinalizeMeta) (
	*entity.ShiftHistoryRecord, map[string]entity.ShiftEntry, string, *domain.PartialFinalizeError, error,
) {
	entries := a.collect(ctx, products)
	record := entity.ShiftHistoryRecord{
		Timestamp: a.now(),
		DeviceID:  a.deviceID,
		UserID:    meta.UserID,
		Products:  domainshift.Snapshot(products, entries),
	}

	key, err := a.history.AppendShiftRecord(ctx, record)
	if err != nil {
		a.log.Error().Err(err).Msg("snapshot del turno no guardado; cierre abortado")
		if !errors.Is(err, domain.ErrPersistence) {
			err = fmt.Errorf("%w: snapshot: %w", domain.ErrPersistence, err)
		}
		return nil, nil, "", nil, err
	}

	var partial *domain.PartialFinalizeError
	for _, p := range products {
		if err := a.ledger.reset(ctx, p.ID); err != nil {
			if partial == nil {
				partial = &domain.PartialFinalizeError{Err: err}
			}
			partial.Remaining = append(partial.Remaining, p.ID)
		}
	}
	return &record, entries, key, partial, nil
}

// excluding productos cuyo id no está en ids.
func excluding(products []entity.Product, ids []string) []entity.Product {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if !skip[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func (a *Aggregator) collect(ctx context.Context, products []entity.Product) map[string]entity.ShiftEntry {
	entries := make(map[string]entity.ShiftEntry, len(products))
	for _, p := range products {
		if e, ok := a.ledger.lookup(ctx, p.ID); ok {
			entries[p.ID] = e
		}
	}
	return entries
}

func (a *Aggregator) report(ctx context.Context, record entity.ShiftHistoryRecord, s entity.ShiftSummary, products []entity.Product, meta FinalizeMeta) {
	if len(a.reporters) == 0 || !s.HasSales() {
		return
	}
	rows := make([]entity.ShiftRecordProduct, 0, len(products))
	for _, r := range record.Products {
		for _, p := range products {
			if p.ID == r.ProductID {
				rows = append(rows, r)
				break
			}
		}
	}
	report := entity.ShiftReport{
		UserID:               meta.UserID,
		UserEmail:            meta.UserEmail,
		DeviceID:             a.deviceID,
		ShiftDate:            record.Timestamp,
		TotalInitialQuantity: s.TotalInitial,
		TotalSold:            s.TotalSold,
		TotalSoldCash:        s.TotalSoldCash,
		TotalSoldCredit:      s.TotalSoldCredit,
		TotalSoldValue:       s.TotalSoldValue,
		TotalSoldValueCash:   s.TotalSoldValueCash,
		TotalSoldValueCredit: s.TotalSoldValueCredit,
		Products:             rows,
		CreatedAt:            record.Timestamp,
	}
	// Un solo plazo para todos los reporters: el cierre ya está hecho y la respuesta no debe esperar.
	rctx, cancel := context.WithTimeout(ctx, a.reportTTL)
	defer cancel()
	for _, r := range a.reporters {
		if err := r.ReportShift(rctx, report); err != nil {
			a.log.Warn().Err(err).Msg("reporte de turno no enviado")
		}
	}
}
