package shift

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// Claves del almacenamiento local del dispositivo.
const (
	entryKeyPrefix   = "shift_"
	historyKeyPrefix = "shift_history_"
)

// EntryKey clave del libro de un producto: shift_<productId>.
func EntryKey(productID string) string {
	return entryKeyPrefix + productID
}

// HistoryKey clave de un snapshot de cierre: shift_history_<epoch-millis>.
func HistoryKey(epochMillis int64) string {
	return fmt.Sprintf("%s%d", historyKeyPrefix, epochMillis)
}

// KVStore almacenamiento clave-valor local del dispositivo (un escritor por libro).
// Get devuelve found=false sin error cuando la clave no existe.
type KVStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Delete(ctx context.Context, key string) error
}

// CatalogQuantityPort escrituras de existencia sobre el catálogo externo.
// Ambas son best-effort desde el punto de vista del libro.
type CatalogQuantityPort interface {
	SetQuantity(ctx context.Context, productID string, value int) error
	DecrementQuantity(ctx context.Context, productID string, amount int) error
}

// HistoryStore destino del snapshot de cierre. Un fallo aborta el cierre antes de limpiar el libro.
type HistoryStore interface {
	AppendShiftRecord(ctx context.Context, record entity.ShiftHistoryRecord) (key string, err error)
}

// ShiftReporter receptor best-effort del resumen de un turno cerrado (tabla shifts, eventos).
type ShiftReporter interface {
	ReportShift(ctx context.Context, report entity.ShiftReport) error
}

// SummaryPDFGenerator representación imprimible del resumen del turno.
type SummaryPDFGenerator interface {
	GenerateShiftSummaryPDF(ctx context.Context, summary entity.ShiftSummary, deviceID string) ([]byte, error)
}
