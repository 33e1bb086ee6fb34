package ports

import (
	"context"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// CatalogClient is the remote catalog/order/auth service. Every call is
// one-shot; failures come back as *domain.RemoteError, never as panics.
type CatalogClient interface {
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchPortfolio(ctx context.Context) ([]domain.PortfolioItem, error)
	Login(ctx context.Context, email string) (*domain.User, error)
	Authenticate(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (*domain.User, error)
	SubmitOrder(ctx context.Context, order domain.Order) (*domain.OrderReceipt, error)
	SubmitContact(ctx context.Context, contact domain.Contact) error
}
