package ports

import (
	"context"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// CatalogService is the reference catalog backend the storefront talks to.
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Portfolio(ctx context.Context) ([]domain.PortfolioItem, error)
	// Login signs a visitor in by email alone, creating the account on first use.
	Login(ctx context.Context, email string) (*domain.User, error)
	Signup(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	PasswordLogin(ctx context.Context, email, password string) (*domain.User, error)
	PlaceOrder(ctx context.Context, order domain.Order) (*domain.PlacedOrder, error)
	SubmitContact(ctx context.Context, contact domain.Contact) error
}
