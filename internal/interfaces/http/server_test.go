package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-turnos/internal/application/auth"
	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/application/usecase"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
	"github.com/jhoicas/inventario-turnos/internal/infrastructure/kv"
	apphttp "github.com/jhoicas/inventario-turnos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProducts struct {
	mu    sync.Mutex
	items []*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, p)
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == p.ID {
			m.items[i] = p
		}
	}
	return nil
}

func (m *memProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.items))
	for _, p := range m.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProducts) Categories(context.Context) ([]string, error) { return []string{"bebidas"}, nil }

func (m *memProducts) SetQuantity(_ context.Context, id string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			p.Quantity = max(0, v)
		}
	}
	return nil
}

func (m *memProducts) DecrementQuantity(_ context.Context, id string, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			p.Quantity = max(0, p.Quantity-n)
		}
	}
	return nil
}

func (m *memProducts) Delete(context.Context, string) error { return nil }

func (m *memProducts) quantity(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			return p.Quantity
		}
	}
	return -1
}

type memUsers struct {
	mu    sync.Mutex
	users []*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app      *fiber.App
	store    *kv.MemoryStore
	products *memProducts
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	products := &memProducts{items: []*entity.Product{
		{ID: "p1", Name: "Agua", Price: decimal.NewFromInt(2000), Quantity: 10, Category: "bebidas", MinStock: 2},
		{ID: "p2", Name: "Cerveza", Price: decimal.NewFromInt(5000), Quantity: 8, Category: "bebidas", MinStock: 2},
	}}
	store := kv.NewMemoryStore("")
	catalog := appshift.NewBestEffortCatalog(products, log, appshift.CatalogOptions{})
	ledger := appshift.NewLedger(store, catalog, log)
	agg := appshift.NewAggregator(ledger, kv.NewHistoryStore(store), log, appshift.WithDeviceID("caja-1"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(&memUsers{}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 10, Issuer: testIssuer}).
			WithBcryptCost(bcrypt.MinCost),
		UserUC:    usecase.NewUserUseCase(&memUsers{}),
		ProductUC: usecase.NewProductUseCase(products),
		ShiftUC:   appshift.NewUseCase(products, ledger, agg, nil),
		JWTSecret: testJWTSecret,
	})
	return &testServer{app: app, store: store, products: products}
}

// call envía la petición con el token del rol indicado ("" = sin token) y decodifica el JSON en out.
func (s *testServer) call(t *testing.T, method, path, role string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}
