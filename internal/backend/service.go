// Package backend is the reference catalog service used in development. It
// serves the collections and accepts the logins, orders and contact messages
// the storefront submits.
package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

const minPasswordLen = 6

// Service implements ports.CatalogService on top of the repositories.
type Service struct {
	catalog  ports.CatalogRepository
	accounts ports.AccountRepository
	orders   ports.OrderRepository
	contacts ports.ContactRepository
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(
	catalog ports.CatalogRepository,
	accounts ports.AccountRepository,
	orders ports.OrderRepository,
	contacts ports.ContactRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		catalog:  catalog,
		accounts: accounts,
		orders:   orders,
		contacts: contacts,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.Categories(ctx)
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.Products(ctx)
}

func (s *Service) Portfolio(ctx context.Context) ([]domain.PortfolioItem, error) {
	return s.catalog.Portfolio(ctx)
}

func (s *Service) Login(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmptyEmail
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		u := account.User()
		return &u, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	account = &domain.Account{Email: email, CreatedAt: s.now()}
	if err := s.accounts.Create(ctx, account); err != nil && !errors.Is(err, domain.ErrAccountExists) {
		return nil, err
	}
	s.log.Info().Str("email", email).Msg("account created on first login")

	u := account.User()
	return &u, nil
}

func (s *Service) Signup(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	email := normalizeEmail(creds.Email)
	if email == "" {
		return nil, domain.ErrEmptyEmail
	}
	if len(creds.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		Name:         strings.TrimSpace(creds.Name),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	u := account.User()
	return &u, nil
}

func (s *Service) PasswordLogin(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Email-only accounts have no password to compare against.
	if account.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	u := account.User()
	return &u, nil
}

func (s *Service) PlaceOrder(ctx context.Context, order domain.Order) (*domain.PlacedOrder, error) {
	order.UserEmail = normalizeEmail(order.UserEmail)
	if order.UserEmail == "" || len(order.Lines) == 0 {
		return nil, domain.ErrOrderIncomplete
	}
	for _, l := range order.Lines {
		if l.ProductID == "" || l.Quantity < 1 || l.Quantity > domain.MaxQuantity {
			return nil, domain.ErrOrderIncomplete
		}
	}

	placed := &domain.PlacedOrder{
		ID:        s.newID(),
		Order:     order,
		CreatedAt: s.now(),
	}
	if err := s.orders.Create(ctx, placed); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", placed.ID).
		Str("email", placed.UserEmail).
		Int("lines", len(placed.Lines)).
		Msg("order placed")
	return placed, nil
}

func (s *Service) SubmitContact(ctx context.Context, contact domain.Contact) error {
	contact = domain.Contact{
		Name:    strings.TrimSpace(contact.Name),
		Email:   normalizeEmail(contact.Email),
		Message: strings.TrimSpace(contact.Message),
	}
	if !contact.Complete() {
		return domain.ErrIncompleteContact
	}
	return s.contacts.Create(ctx, &domain.ContactMessage{Contact: contact, CreatedAt: s.now()})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
