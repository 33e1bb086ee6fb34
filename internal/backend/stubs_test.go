package backend

import (
	"context"
	"sync"

	"github.com/laserstudio/storefront/internal/core/domain"
)

type stubCatalogRepo struct {
	catalog domain.Catalog
	err     error
}

func (r *stubCatalogRepo) Categories(context.Context) ([]domain.Category, error) {
	return r.catalog.Categories, r.err
}

func (r *stubCatalogRepo) Products(context.Context) ([]domain.Product, error) {
	return r.catalog.Products, r.err
}

func (r *stubCatalogRepo) Portfolio(context.Context) ([]domain.PortfolioItem, error) {
	return r.catalog.Portfolio, r.err
}

func (r *stubCatalogRepo) Seed(_ context.Context, c domain.Catalog) error {
	r.catalog = c
	return nil
}

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[a.Email]; exists {
		return domain.ErrAccountExists
	}
	r.accounts[a.Email] = *a
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

type stubOrderRepo struct {
	orders []domain.PlacedOrder
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.PlacedOrder) error {
	r.orders = append(r.orders, *o)
	return nil
}

type stubContactRepo struct {
	messages []domain.ContactMessage
}

func (r *stubContactRepo) Create(_ context.Context, m *domain.ContactMessage) error {
	r.messages = append(r.messages, *m)
	return nil
}
