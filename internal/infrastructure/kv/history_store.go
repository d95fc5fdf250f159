package kv

import (
	"context"
	"encoding/json"
	"fmt"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

var _ appshift.HistoryStore = (*HistoryStore)(nil)

// maxKeyAttempts intentos ante colisión de milisegundos.
const maxKeyAttempts = 16

// HistoryStore guarda cada snapshot de cierre en shift_history_<epoch-millis> una sola vez.
type HistoryStore struct {
	store appshift.KVStore
}

// NewHistoryStore construye el adaptador sobre el mismo KVStore del libro.
func NewHistoryStore(store appshift.KVStore) *HistoryStore {
	return &HistoryStore{store: store}
}

// AppendShiftRecord escribe con SETNX; si la clave del milisegundo ya existe avanza un milisegundo.
func (h *HistoryStore) AppendShiftRecord(ctx context.Context, record entity.ShiftHistoryRecord) (string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("%w: codificar snapshot: %w", domain.ErrPersistence, err)
	}
	ms := record.Timestamp.UnixMilli()
	for i := 0; i < maxKeyAttempts; i++ {
		key := appshift.HistoryKey(ms + int64(i))
		ok, err := h.store.SetNX(ctx, key, raw)
		if err != nil {
			return "", fmt.Errorf("%w: guardar %s: %w", domain.ErrPersistence, key, err)
		}
		if ok {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: sin clave libre para el snapshot (%d)", domain.ErrPersistence, ms)
}
