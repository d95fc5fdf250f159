package shift

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// FinalizeState estado del cierre de turno visto por quien lo invoca.
type FinalizeState int

const (
	StateIdle FinalizeState = iota
	StateReviewing
	StateConfirming
	StateFinalized
	StateAborted
)

func (s FinalizeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReviewing:
		return "reviewing"
	case StateConfirming:
		return "confirming"
	case StateFinalized:
		return "finalized"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("FinalizeState(%d)", int(s))
	}
}

// FinalizeFlow Idle → Reviewing → Confirming → {Finalized | Aborted}.
// Reviewing solo se alcanza si el resumen tiene al menos un producto con ventas.
type FinalizeFlow struct {
	agg      *Aggregator
	products []entity.Product
	meta     FinalizeMeta
	state    FinalizeState
	summary  entity.ShiftSummary
	record   *entity.ShiftHistoryRecord
}

// NewFinalizeFlow flujo de cierre sobre el catálogo dado.
func NewFinalizeFlow(agg *Aggregator, products []entity.Product, meta FinalizeMeta) *FinalizeFlow {
	return &FinalizeFlow{agg: agg, products: products, meta: meta, state: StateIdle}
}

// State estado actual.
func (f *FinalizeFlow) State() FinalizeState { return f.state }

// Summary último resumen revisado.
func (f *FinalizeFlow) Summary() entity.ShiftSummary { return f.summary }

// Record snapshot guardado (nil antes de Finalized).
func (f *FinalizeFlow) Record() *entity.ShiftHistoryRecord { return f.record }

// Review calcula el resumen. Sin ventas devuelve ErrNothingToFinalize y el flujo sigue en Idle.
func (f *FinalizeFlow) Review(ctx context.Context) (entity.ShiftSummary, error) {
	if f.state != StateIdle && f.state != StateReviewing {
		return entity.ShiftSummary{}, f.invalid("review")
	}
	s := f.agg.Summarize(ctx, f.products)
	if !s.HasSales() {
		f.state = StateIdle
		return s, domain.ErrNothingToFinalize
	}
	f.summary = s
	f.state = StateReviewing
	return s, nil
}

// Confirm el usuario aceptó el resumen.
func (f *FinalizeFlow) Confirm() error {
	if f.state != StateReviewing {
		return f.invalid("confirm")
	}
	f.state = StateConfirming
	return nil
}

// Abort descarta el cierre sin efectos.
func (f *FinalizeFlow) Abort() error {
	if f.state != StateReviewing && f.state != StateConfirming {
		return f.invalid("abort")
	}
	f.state = StateAborted
	return nil
}

// Finalize ejecuta el cierre. Si el snapshot falla el flujo sigue en Confirming (se puede reintentar);
// un cierre parcial deja el flujo en Finalized y devuelve el error parcial.
func (f *FinalizeFlow) Finalize(ctx context.Context) (*entity.ShiftHistoryRecord, error) {
	if f.state != StateConfirming {
		return nil, f.invalid("finalize")
	}
	record, err := f.agg.Finalize(ctx, f.products, f.meta)
	if record == nil {
		return nil, err
	}
	f.record = record
	f.state = StateFinalized
	return record, err
}

func (f *FinalizeFlow) invalid(op string) error {
	return fmt.Errorf("%w: %s desde %s", domain.ErrInvalidTransition, op, f.state)
}
