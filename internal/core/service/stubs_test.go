package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/fallback"
)

type stubClient struct {
	categories []domain.Category
	products   []domain.Product
	portfolio  []domain.PortfolioItem

	loginFn  func(ctx context.Context, email string) (*domain.User, error)
	authFn   func(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (*domain.User, error)
	orderFn  func(ctx context.Context, order domain.Order) (*domain.OrderReceipt, error)
	contactF func(ctx context.Context, c domain.Contact) error

	mu     sync.Mutex
	orders []domain.Order
	logins int
}

func (c *stubClient) FetchCategories(context.Context) ([]domain.Category, error) {
	return c.categories, nil
}

func (c *stubClient) FetchProducts(context.Context) ([]domain.Product, error) {
	return c.products, nil
}

func (c *stubClient) FetchPortfolio(context.Context) ([]domain.PortfolioItem, error) {
	return c.portfolio, nil
}

func (c *stubClient) Login(ctx context.Context, email string) (*domain.User, error) {
	c.mu.Lock()
	c.logins++
	c.mu.Unlock()
	if c.loginFn != nil {
		return c.loginFn(ctx, email)
	}
	return &domain.User{Email: email}, nil
}

func (c *stubClient) Authenticate(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (*domain.User, error) {
	if c.authFn != nil {
		return c.authFn(ctx, mode, creds)
	}
	return &domain.User{Email: creds.Email, Name: creds.Name}, nil
}

func (c *stubClient) SubmitOrder(ctx context.Context, order domain.Order) (*domain.OrderReceipt, error) {
	c.mu.Lock()
	c.orders = append(c.orders, order)
	c.mu.Unlock()
	if c.orderFn != nil {
		return c.orderFn(ctx, order)
	}
	return &domain.OrderReceipt{ID: "ord-1"}, nil
}

func (c *stubClient) SubmitContact(ctx context.Context, contact domain.Contact) error {
	if c.contactF != nil {
		return c.contactF(ctx, contact)
	}
	return nil
}

func (c *stubClient) orderCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.orders)
}

// mapStore is a StateStore without idle eviction.
type mapStore struct {
	mu     sync.Mutex
	states map[string]domain.AppState
}

func newMapStore() *mapStore {
	return &mapStore{states: make(map[string]domain.AppState)}
}

func (s *mapStore) Get(_ context.Context, id string) domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		st = domain.NewAppState()
		s.states[id] = st
	}
	return st
}

func (s *mapStore) Update(ctx context.Context, id string, fn func(domain.AppState) (domain.AppState, error)) (domain.AppState, error) {
	cur := s.Get(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	s.states[id] = next
	return next, nil
}

// recordingDispatcher keeps every request instead of fetching.
type recordingDispatcher struct {
	mu   sync.Mutex
	reqs []domain.FetchRequest
}

func (d *recordingDispatcher) Dispatch(reqs []domain.FetchRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reqs = append(d.reqs, reqs...)
}

func (d *recordingDispatcher) take() []domain.FetchRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.reqs
	d.reqs = nil
	return out
}

type stubGuard struct {
	held       map[string]bool
	acquireErr error
	released   int
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, vid, fp string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	key := vid + ":" + fp
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, vid, fp string) error {
	g.released++
	delete(g.held, vid+":"+fp)
	return nil
}

type testRig struct {
	store      *mapStore
	client     *stubClient
	dispatcher *recordingDispatcher
	guard      *stubGuard
	router     *ViewRouter
	applier    *FetchApplier
	svc        *Storefront
}

func newTestRig(client *stubClient) *testRig {
	log := zerolog.Nop()
	r := &testRig{
		store:      newMapStore(),
		client:     client,
		dispatcher: &recordingDispatcher{},
		guard:      newStubGuard(),
		router:     NewViewRouter(log),
	}
	r.applier = NewFetchApplier(r.store, r.router, log)
	r.svc = NewStorefront(
		r.store,
		r.router,
		NewSessionService(client, r.guard, r.router, log),
		NewReconciler(fallback.Default()),
		r.dispatcher,
		log,
	)
	return r
}

// drain resolves every dispatched request against the stub client.
func (r *testRig) drain(ctx context.Context) {
	for _, req := range r.dispatcher.take() {
		res := domain.FetchResult{FetchRequest: req}
		switch req.Slice {
		case domain.SliceCategories:
			res.Categories, _ = r.client.FetchCategories(ctx)
		case domain.SliceProducts:
			res.Products, _ = r.client.FetchProducts(ctx)
		case domain.SlicePortfolio:
			res.Portfolio, _ = r.client.FetchPortfolio(ctx)
		}
		r.applier.Deliver(ctx, res)
	}
}

func strPtr(s string) *string { return &s }
