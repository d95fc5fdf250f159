package kv

import (
	"context"
	"sort"
	"strings"
	"sync"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
)

var _ appshift.KVStore = (*MemoryStore)(nil)

// MemoryStore KVStore en memoria del proceso (SHIFT_STORE=memory, tests). Se pierde al reiniciar.
type MemoryStore struct {
	mu     sync.RWMutex
	prefix string
	data   map[string][]byte
}

// NewMemoryStore construye el almacenamiento. prefix se antepone a cada clave.
func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{prefix: prefix, data: make(map[string][]byte)}
}

// Get devuelve una copia del valor.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[s.prefix+key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set guarda una copia del valor.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.prefix+key] = append([]byte(nil), value...)
	return nil
}

// SetNX guarda solo si la clave no existe.
func (s *MemoryStore) SetNX(_ context.Context, key string, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[s.prefix+key]; ok {
		return false, nil
	}
	s.data[s.prefix+key] = append([]byte(nil), value...)
	return true, nil
}

// Delete borra la clave; no existe = no-op.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, s.prefix+key)
	return nil
}

// Keys claves (sin prefijo) que empiezan por match, ordenadas.
func (s *MemoryStore) Keys(match string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for k := range s.data {
		k = strings.TrimPrefix(k, s.prefix)
		if strings.HasPrefix(k, match) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
