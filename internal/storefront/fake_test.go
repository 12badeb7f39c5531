package storefront

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/domain/admin"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/session"
	"github.com/example/storefront/internal/infrastructure/store/mocks"
	"github.com/example/storefront/internal/logx"
	"github.com/example/storefront/internal/money"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logx.Init(logx.LoggerOpts{Environment: config.Testing})
	os.Exit(m.Run())
}

// fakeAPI is a scripted backend. A non-nil gate holds the matching call until
// it is closed; started receives one value per gated call once it is in flight.
type fakeAPI struct {
	mu sync.Mutex

	products  []catalog.Product
	listErr   error
	listGate  chan struct{}
	listCalls int

	orderErr  error
	orderGate chan struct{}
	orders    []checkout.OrderRequest

	createErr error
	created   []admin.NewProduct

	user          session.User
	loginErr      error
	logins        []session.Credentials
	registerErr   error
	registrations []session.Registration

	started chan struct{}
}

func newFakeAPI(products ...catalog.Product) *fakeAPI {
	return &fakeAPI{
		products: products,
		user:     session.User{ID: "7", Name: "Ana", Email: "ana@example.com"},
		started:  make(chan struct{}, 16),
	}
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	f.listCalls++
	gate, products, err := f.listGate, f.products, f.listErr
	f.mu.Unlock()

	if gate != nil {
		f.started <- struct{}{}
		<-gate
	}
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p admin.NewProduct) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	if f.createErr != nil {
		return f.createErr
	}
	f.products = append(f.products, catalog.Product{
		ID:     int64(len(f.products) + 1),
		Name:   p.Name,
		Price:  p.Price,
		Colors: p.Colors,
	})
	return nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req checkout.OrderRequest) error {
	f.mu.Lock()
	f.orders = append(f.orders, req)
	gate, err := f.orderGate, f.orderErr
	f.mu.Unlock()

	if gate != nil {
		f.started <- struct{}{}
		<-gate
	}
	return err
}

func (f *fakeAPI) Login(ctx context.Context, creds session.Credentials) (session.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, creds)
	if f.loginErr != nil {
		return session.User{}, f.loginErr
	}
	return f.user, nil
}

func (f *fakeAPI) Register(ctx context.Context, reg session.Registration) (session.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations = append(f.registrations, reg)
	if f.registerErr != nil {
		return session.User{}, f.registerErr
	}
	return f.user, nil
}

func (f *fakeAPI) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func (f *fakeAPI) lastOrder() checkout.OrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[len(f.orders)-1]
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// authFunc adapts a function to auth.Authenticator.
type authFunc func(ctx context.Context, creds auth.Credentials) error

func (f authFunc) Authenticate(ctx context.Context, creds auth.Credentials) error {
	return f(ctx, creds)
}

var testAdmin = authFunc(func(_ context.Context, creds auth.Credentials) error {
	if creds.Username == "admin" && creds.Password == "admin123" {
		return nil
	}
	return auth.ErrInvalidCredentials
})

func iphone() catalog.Product {
	return catalog.Product{
		ID:          1,
		Name:        "iPhone 15 Pro",
		Description: "Titânio",
		Price:       money.FromCents(599900),
		Category:    "iPhone",
		Stock:       10,
		Colors:      []string{"Azul", "Preto"},
	}
}

func airpods() catalog.Product {
	return catalog.Product{ID: 2, Name: "AirPods Pro", Price: money.FromCents(189900), Category: "Acessórios"}
}

func startLoop(t *testing.T) *Loop {
	t.Helper()
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Stopped()
	})
	return loop
}

func newTestApp(t *testing.T, api *fakeAPI) (*App, *mocks.MockEventStore) {
	t.Helper()
	journal := mocks.NewMockEventStore()
	app := NewApp("sess-1", startLoop(t), api, testAdmin, journal)
	return app, journal
}

// loadedApp returns an app whose catalog is already loaded.
func loadedApp(t *testing.T, api *fakeAPI) (*App, *mocks.MockEventStore) {
	t.Helper()
	app, journal := newTestApp(t, api)
	require.NoError(t, app.LoadCatalog(context.Background()))
	return app, journal
}

func view(t *testing.T, app *App) View {
	t.Helper()
	v, err := app.View(context.Background())
	require.NoError(t, err)
	return v
}

func validCustomer() checkout.CustomerInfo {
	return checkout.CustomerInfo{
		Name:    "Ana Souza",
		Email:   "ana@example.com",
		Phone:   "11999990000",
		Address: "Rua das Flores",
		Number:  "100",
		City:    "São Paulo",
		State:   "SP",
		ZipCode: "01000-000",
	}
}
