package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
	"github.com/laserstudio/storefront/internal/pkg/metrics"
)

const (
	orderPlacedMessage = "Order placed. We will contact you shortly!"
	contactSentMessage = "We got your message. Thank you!"
	contactFailedText  = "Failed to send"
)

// SessionService owns authentication state and the checkout state machine.
type SessionService struct {
	client ports.CatalogClient
	guard  ports.CheckoutGuard
	router *ViewRouter
	log    zerolog.Logger
}

// NewSessionService wires the controller. guard may be nil, in which case
// concurrent submissions are not deduplicated.
func NewSessionService(client ports.CatalogClient, guard ports.CheckoutGuard, router *ViewRouter, log zerolog.Logger) *SessionService {
	return &SessionService{client: client, guard: guard, router: router, log: log}
}

// Login signs the visitor in by email. On failure s is returned unchanged.
func (s *SessionService) Login(ctx context.Context, st domain.AppState, email string) (domain.AppState, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return st, domain.ErrEmptyEmail
	}

	user, err := s.client.Login(ctx, email)
	if err != nil {
		metrics.LoginTotal.WithLabelValues("email", "error").Inc()
		s.log.Warn().Err(err).Str("email", email).Msg("login failed")
		return st, fmt.Errorf("login: %w", err)
	}

	metrics.LoginTotal.WithLabelValues("email", "ok").Inc()
	st.Session = st.Session.SignIn(*user)
	return st, nil
}

// Authenticate signs the visitor in with a password, creating the account
// first when mode is signup.
func (s *SessionService) Authenticate(ctx context.Context, st domain.AppState, mode domain.AuthMode, creds domain.Credentials) (domain.AppState, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return st, domain.ErrEmptyEmail
	}
	if creds.Password == "" {
		return st, domain.ErrEmptyPassword
	}

	method := "password"
	if mode == domain.AuthModeSignup {
		method = "signup"
	}

	user, err := s.client.Authenticate(ctx, mode, creds)
	if err != nil {
		metrics.LoginTotal.WithLabelValues(method, "error").Inc()
		s.log.Warn().Err(err).Str("email", creds.Email).Str("mode", string(mode)).Msg("authentication failed")
		return st, fmt.Errorf("authenticate: %w", err)
	}

	metrics.LoginTotal.WithLabelValues(method, "ok").Inc()
	st.Session = st.Session.SignIn(*user)
	return st, nil
}

// SignOut clears the session locally.
func (s *SessionService) SignOut(st domain.AppState) domain.AppState {
	st.Session = st.Session.SignOut()
	return st
}

// Checkout submits the cart as an order.
//
//   - Anonymous visitors are routed to the account view and nothing is sent.
//   - An empty cart returns ErrEmptyCart and nothing is sent.
//   - The cart is cleared only when the response carries an order id.
func (s *SessionService) Checkout(ctx context.Context, st domain.AppState, visitorID string) (domain.AppState, *ports.CheckoutResult, error) {
	if !st.Session.Authenticated() {
		metrics.CheckoutTotal.WithLabelValues("login_required").Inc()
		st, _ = s.router.Enter(st, visitorID, domain.ViewAccount)
		return st, &ports.CheckoutResult{Outcome: ports.CheckoutLoginRequired}, nil
	}
	if st.Cart.IsEmpty() {
		metrics.CheckoutTotal.WithLabelValues("empty_cart").Inc()
		return st, nil, domain.ErrEmptyCart
	}

	fp := cartFingerprint(st.Cart)
	if s.guard != nil {
		ok, err := s.guard.Acquire(ctx, visitorID, fp)
		if err != nil {
			s.log.Warn().Err(err).Str("visitor", visitorID).Msg("checkout guard unavailable, submitting anyway")
		} else if !ok {
			metrics.CheckoutTotal.WithLabelValues("in_progress").Inc()
			return st, nil, domain.ErrCheckoutInProgress
		}
	}

	order := domain.Order{
		UserEmail:    st.Session.User.Email,
		Lines:        st.Cart.Lines(),
		Notes:        "",
		ContactPhone: "",
	}

	receipt, err := s.client.SubmitOrder(ctx, order)
	if err == nil && (receipt == nil || receipt.ID == "") {
		err = domain.ErrMissingOrderID
	}
	if err != nil {
		s.release(ctx, visitorID, fp)
		metrics.CheckoutTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Str("visitor", visitorID).Int("lines", len(order.Lines)).Msg("checkout failed")
		return st, nil, fmt.Errorf("checkout: %w", err)
	}

	metrics.CheckoutTotal.WithLabelValues("placed").Inc()
	s.log.Info().Str("order_id", receipt.ID).Str("email", order.UserEmail).Int("items", st.Cart.ItemCount()).Msg("order placed")

	st = st.WithCart(st.Cart.Clear())
	return st, &ports.CheckoutResult{
		Outcome: ports.CheckoutPlaced,
		OrderID: receipt.ID,
		Message: orderPlacedMessage,
	}, nil
}

// SubmitContact sends a project brief and returns the status line to show.
func (s *SessionService) SubmitContact(ctx context.Context, c domain.Contact) (string, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Message = strings.TrimSpace(c.Message)
	if !c.Complete() {
		return "", domain.ErrIncompleteContact
	}

	if err := s.client.SubmitContact(ctx, c); err != nil {
		s.log.Warn().Err(err).Str("email", c.Email).Msg("contact submission failed")
		return domain.UserMessage(err, contactFailedText), fmt.Errorf("contact: %w", err)
	}
	return contactSentMessage, nil
}

func (s *SessionService) release(ctx context.Context, visitorID, fp string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.Release(ctx, visitorID, fp); err != nil {
		s.log.Warn().Err(err).Str("visitor", visitorID).Msg("failed to release checkout guard")
	}
}

// cartFingerprint identifies a cart by its lines, order included.
func cartFingerprint(c domain.Cart) string {
	h := fnv.New64a()
	for _, l := range c.Lines() {
		fmt.Fprintf(h, "%s:%d;", l.ProductID, l.Quantity)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
