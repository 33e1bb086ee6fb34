package ports

import (
	"context"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// CartLineView is a cart line priced against the effective product set.
// Available is false for a dangling reference; its price fields are then zero.
type CartLineView struct {
	ProductID string
	Quantity  int
	Title     string
	ImageRef  string
	Price     float64
	LineTotal float64
	Available bool
}

// CartView summarizes the ledger for rendering.
type CartView struct {
	Lines     []CartLineView
	ItemCount int
	Total     float64
}

// StorefrontView is everything needed to render one visitor's storefront.
type StorefrontView struct {
	View                domain.View
	Generation          uint64
	Trigger             uint64
	Categories          []domain.Category
	Products            []domain.Product
	Portfolio           []domain.PortfolioItem
	PortfolioCategories []domain.Category
	ProductFilter       string
	PortfolioFilter     string
	Cart                CartView
	User                *domain.User
	DisplayName         string
}

// CheckoutOutcome describes how a checkout attempt ended.
type CheckoutOutcome string

const (
	CheckoutPlaced        CheckoutOutcome = "placed"
	CheckoutLoginRequired CheckoutOutcome = "login_required"
)

// CheckoutResult is returned by a checkout that did not fail.
type CheckoutResult struct {
	Outcome CheckoutOutcome
	OrderID string
	Message string
}

// StorefrontService is the per-visitor use-case surface used by the HTTP layer.
type StorefrontService interface {
	State(ctx context.Context, visitorID string) (*StorefrontView, error)
	EnterView(ctx context.Context, visitorID string, view domain.View) (*StorefrontView, error)
	SetFilter(ctx context.Context, visitorID string, d domain.FilterDomain, key string) (*StorefrontView, error)
	AddToCart(ctx context.Context, visitorID, productID string) (*StorefrontView, error)
	RemoveFromCart(ctx context.Context, visitorID, productID string) (*StorefrontView, error)
	MergeCart(ctx context.Context, visitorID string, lines []domain.CartLine) (*StorefrontView, error)
	Login(ctx context.Context, visitorID, email string) (*StorefrontView, error)
	Authenticate(ctx context.Context, visitorID string, mode domain.AuthMode, creds domain.Credentials) (*StorefrontView, error)
	SignOut(ctx context.Context, visitorID string) (*StorefrontView, error)
	Checkout(ctx context.Context, visitorID string) (*CheckoutResult, *StorefrontView, error)
	SubmitContact(ctx context.Context, contact domain.Contact) (string, error)
}
