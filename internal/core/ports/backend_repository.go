package ports

import (
	"context"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// CatalogRepository stores the collections served by the catalog backend.
type CatalogRepository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Portfolio(ctx context.Context) ([]domain.PortfolioItem, error)
	// Seed inserts the given catalog into every collection that is still empty.
	Seed(ctx context.Context, catalog domain.Catalog) error
}

// AccountRepository stores customer accounts keyed by email.
type AccountRepository interface {
	// Create fails with domain.ErrAccountExists when the email is taken.
	Create(ctx context.Context, account *domain.Account) error
	// FindByEmail fails with domain.ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// OrderRepository stores accepted orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.PlacedOrder) error
}

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}
