package shift

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/inventario-turnos/internal/domain"
)

// Locker exclusión mutua por clave entre escritores del mismo libro.
// Lock bloquea hasta obtener la clave o hasta que ctx termine; unlock no es reentrante.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// lockKey clave de exclusión del libro de un producto.
func lockKey(productID string) string {
	return "lock:" + EntryKey(productID)
}

// LocalLocker Locker de un solo proceso: un semáforo de capacidad 1 por clave.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker construye el locker en memoria.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[string]*keyLock{}}
}

// Lock espera la clave respetando ctx.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	k, ok := l.locks[key]
	if !ok {
		k = &keyLock{sem: make(chan struct{}, 1)}
		l.locks[key] = k
	}
	k.refs++
	l.mu.Unlock()

	select {
	case k.sem <- struct{}{}:
		return func() {
			<-k.sem
			l.release(key, k)
		}, nil
	case <-ctx.Done():
		l.release(key, k)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) release(key string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.locks, key)
	}
}

// lockProduct toma el lock del libro de un producto.
func (l *Ledger) lockProduct(ctx context.Context, productID string) (func(), error) {
	unlock, err := l.locker.Lock(ctx, lockKey(productID))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLedgerBusy, productID, err)
	}
	return unlock, nil
}

// lockAll toma el lock de todos los productos en orden de id, para no cruzarse con otro lockAll.
// Si falla alguno libera los ya tomados.
func (l *Ledger) lockAll(ctx context.Context, productIDs []string) (func(), error) {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids)

	unlocks := make([]func(), 0, len(ids))
	releaseAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		unlock, err := l.lockProduct(ctx, id)
		if err != nil {
			releaseAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return releaseAll, nil
}
