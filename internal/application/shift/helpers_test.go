package shift_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
	"github.com/jhoicas/inventario-turnos/internal/infrastructure/kv"
)

var errStore = errors.New("almacenamiento no disponible")

// flakyStore MemoryStore con fallos inyectables por clave.
type flakyStore struct {
	*kv.MemoryStore
	failGet    map[string]bool
	failSet    map[string]bool
	failDelete map[string]bool
	failSetNX  bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{
		MemoryStore: kv.NewMemoryStore(""),
		failGet:     map[string]bool{},
		failSet:     map[string]bool{},
		failDelete:  map[string]bool{},
	}
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failGet[key] {
		return nil, false, errStore
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet[key] {
		return errStore
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	if s.failSetNX {
		return false, errStore
	}
	return s.MemoryStore.SetNX(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if s.failDelete[key] {
		return errStore
	}
	return s.MemoryStore.Delete(ctx, key)
}

// slowStore agrega latencia a cada lectura para abrir la ventana entre leer y guardar.
type slowStore struct {
	*flakyStore
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(s.delay)
	return s.flakyStore.Get(ctx, key)
}

// catalogCall una llamada al puerto de catálogo.
type catalogCall struct {
	Op        string
	ProductID string
	Value     int
}

// fakeCatalog registra llamadas; fail fuerza error.
type fakeCatalog struct {
	mu    sync.Mutex
	calls []catalogCall
	fail  bool
}

func (c *fakeCatalog) SetQuantity(_ context.Context, productID string, value int) error {
	return c.record("set", productID, value)
}

func (c *fakeCatalog) DecrementQuantity(_ context.Context, productID string, amount int) error {
	return c.record("decrement", productID, amount)
}

func (c *fakeCatalog) record(op, id string, v int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, catalogCall{Op: op, ProductID: id, Value: v})
	if c.fail {
		return errors.New("catálogo caído")
	}
	return nil
}

func (c *fakeCatalog) Calls() []catalogCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]catalogCall(nil), c.calls...)
}

// fakeReporter guarda los reportes recibidos.
type fakeReporter struct {
	reports []entity.ShiftReport
	err     error
}

func (r *fakeReporter) ReportShift(_ context.Context, report entity.ShiftReport) error {
	r.reports = append(r.reports, report)
	return r.err
}

// hangingReporter no responde hasta que vence el contexto.
type hangingReporter struct{}

func (hangingReporter) ReportShift(ctx context.Context, _ entity.ShiftReport) error {
	<-ctx.Done()
	return ctx.Err()
}

// failingLocker nunca concede el lock.
type failingLocker struct{}

func (failingLocker) Lock(context.Context, string) (func(), error) {
	return nil, context.DeadlineExceeded
}

// fakeProducts ProductRepository en memoria para el caso de uso.
type fakeProducts struct {
	list []*entity.Product
	err  error
}

func (r *fakeProducts) Create(context.Context, *entity.Product) error { return nil }
func (r *fakeProducts) Update(context.Context, *entity.Product) error { return nil }
func (r *fakeProducts) Delete(context.Context, string) error          { return nil }
func (r *fakeProducts) Categories(context.Context) ([]string, error)  { return nil, nil }

func (r *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.list {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Product
	for _, p := range r.list {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProducts) SetQuantity(_ context.Context, id string, v int) error {
	for _, p := range r.list {
		if p.ID == id {
			p.Quantity = v
		}
	}
	return nil
}

func (r *fakeProducts) DecrementQuantity(_ context.Context, id string, n int) error {
	for _, p := range r.list {
		if p.ID == id {
			p.Quantity = max(0, p.Quantity-n)
		}
	}
	return nil
}

var fixedNow = time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC)

func catalogProducts() []entity.Product {
	return []entity.Product{
		{ID: "p1", Name: "Agua", Price: decimal.NewFromInt(2000), Quantity: 10},
		{ID: "p2", Name: "Cerveza", Price: decimal.NewFromInt(5000), Quantity: 8},
	}
}

type fixture struct {
	store    *flakyStore
	catalog  *fakeCatalog
	reporter *fakeReporter
	ledger   *appshift.Ledger
	agg      *appshift.Aggregator
}

func newFixture() *fixture {
	return newFixtureWith(0)
}

// newFixtureWith delay > 0 usa un slowStore para el libro.
func newFixtureWith(delay time.Duration, opts ...appshift.LedgerOption) *fixture {
	f := &fixture{store: newFlakyStore(), catalog: &fakeCatalog{}, reporter: &fakeReporter{}}
	var store appshift.KVStore = f.store
	if delay > 0 {
		store = &slowStore{flakyStore: f.store, delay: delay}
	}
	log := zerolog.Nop()
	catalogSync := appshift.NewBestEffortCatalog(f.catalog, log, appshift.CatalogOptions{})
	f.ledger = appshift.NewLedger(store, catalogSync, log, opts...)
	f.agg = appshift.NewAggregator(f.ledger, kv.NewHistoryStore(f.store), log,
		appshift.WithClock(func() time.Time { return fixedNow }),
		appshift.WithDeviceID("caja-1"),
		appshift.WithReporters(f.reporter),
	)
	return f
}
