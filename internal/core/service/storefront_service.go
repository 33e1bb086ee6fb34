package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
	"github.com/laserstudio/storefront/internal/pkg/metrics"
)

// Storefront runs every visitor action as a transition on that visitor's
// AppState and renders the result.
type Storefront struct {
	store      ports.StateStore
	router     *ViewRouter
	session    *SessionService
	reconciler *Reconciler
	fetcher    ports.FetchDispatcher
	log        zerolog.Logger
}

func NewStorefront(
	store ports.StateStore,
	router *ViewRouter,
	session *SessionService,
	reconciler *Reconciler,
	fetcher ports.FetchDispatcher,
	log zerolog.Logger,
) *Storefront {
	return &Storefront{
		store:      store,
		router:     router,
		session:    session,
		reconciler: reconciler,
		fetcher:    fetcher,
		log:        log,
	}
}

var _ ports.StorefrontService = (*Storefront)(nil)

func (s *Storefront) State(ctx context.Context, visitorID string) (*ports.StorefrontView, error) {
	return s.render(s.store.Get(ctx, visitorID)), nil
}

// EnterView switches view and dispatches its fetches. The returned view is
// rendered from whatever data is already known; fetch results land later.
func (s *Storefront) EnterView(ctx context.Context, visitorID string, v domain.View) (*ports.StorefrontView, error) {
	var reqs []domain.FetchRequest
	st, err := s.store.Update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		st, reqs = s.router.Enter(st, visitorID, v)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	if len(reqs) > 0 {
		s.fetcher.Dispatch(reqs)
	}
	return s.render(st), nil
}

func (s *Storefront) SetFilter(ctx context.Context, visitorID string, d domain.FilterDomain, key string) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		return st.WithFilter(d, key), nil
	})
}

// AddToCart only accepts products in the visitor's effective product set.
func (s *Storefront) AddToCart(ctx context.Context, visitorID, productID string) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		products := s.reconciler.Reconcile(st.Remote).Products
		if _, ok := domain.FindProduct(products, productID); !ok {
			return st, domain.ErrUnknownProduct
		}
		add := []domain.CartLine{{ProductID: productID, Quantity: 1}}
		if err := st.Cart.CheckMerge(add); err != nil {
			return st, err
		}
		return st.WithCart(st.Cart.Merge(add)), nil
	})
}

func (s *Storefront) RemoveFromCart(ctx context.Context, visitorID, productID string) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		return st.WithCart(st.Cart.Remove(productID)), nil
	})
}

// MergeCart folds a batch of lines into the cart. The batch is rejected as a
// whole when any line is invalid.
func (s *Storefront) MergeCart(ctx context.Context, visitorID string, lines []domain.CartLine) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		products := s.reconciler.Reconcile(st.Remote).Products
		if err := st.Cart.CheckMerge(lines); err != nil {
			return st, err
		}
		for _, l := range lines {
			if _, ok := domain.FindProduct(products, l.ProductID); !ok {
				return st, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, l.ProductID)
			}
		}
		return st.WithCart(st.Cart.Merge(lines)), nil
	})
}

func (s *Storefront) Login(ctx context.Context, visitorID, email string) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		return s.session.Login(ctx, st, email)
	})
}

func (s *Storefront) Authenticate(ctx context.Context, visitorID string, mode domain.AuthMode, creds domain.Credentials) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		return s.session.Authenticate(ctx, st, mode, creds)
	})
}

func (s *Storefront) SignOut(ctx context.Context, visitorID string) (*ports.StorefrontView, error) {
	return s.update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		return s.session.SignOut(st), nil
	})
}

// Checkout runs the checkout state machine. On error the visitor's state is
// left untouched and the returned view reflects it.
func (s *Storefront) Checkout(ctx context.Context, visitorID string) (*ports.CheckoutResult, *ports.StorefrontView, error) {
	var result *ports.CheckoutResult
	st, err := s.store.Update(ctx, visitorID, func(st domain.AppState) (domain.AppState, error) {
		next, res, err := s.session.Checkout(ctx, st, visitorID)
		result = res
		return next, err
	})
	if err != nil {
		return nil, s.render(s.store.Get(ctx, visitorID)), err
	}
	return result, s.render(st), nil
}

func (s *Storefront) SubmitContact(ctx context.Context, c domain.Contact) (string, error) {
	return s.session.SubmitContact(ctx, c)
}

func (s *Storefront) update(ctx context.Context, visitorID string, fn func(domain.AppState) (domain.AppState, error)) (*ports.StorefrontView, error) {
	st, err := s.store.Update(ctx, visitorID, fn)
	if err != nil {
		return nil, err
	}
	return s.render(st), nil
}

func (s *Storefront) render(st domain.AppState) *ports.StorefrontView {
	cat := s.reconciler.Reconcile(st.Remote)
	s.countFallback(st)

	v := &ports.StorefrontView{
		View:                st.View,
		Generation:          st.Generation,
		Trigger:             st.Trigger,
		Categories:          cat.Categories,
		Products:            FilterProducts(cat.Products, st.ProductFilter),
		Portfolio:           FilterPortfolio(cat.Portfolio, st.PortfolioFilter),
		PortfolioCategories: cat.PortfolioCategories,
		ProductFilter:       st.ProductFilter,
		PortfolioFilter:     st.PortfolioFilter,
		Cart:                cartView(st.Cart, cat.Products),
	}
	if u := st.Session.User; u != nil {
		user := *u
		v.User = &user
		v.DisplayName = user.DisplayName()
	}
	return v
}

func (s *Storefront) countFallback(st domain.AppState) {
	products, portfolio := s.reconciler.Fallback(st.Remote)
	switch st.View {
	case domain.ViewProducts:
		if products {
			metrics.FallbackServedTotal.WithLabelValues(string(domain.SliceProducts)).Inc()
		}
	case domain.ViewPortfolio, domain.ViewClients:
		if portfolio {
			metrics.FallbackServedTotal.WithLabelValues(string(domain.SlicePortfolio)).Inc()
		}
	}
}

func cartView(c domain.Cart, products []domain.Product) ports.CartView {
	lines := c.Lines()
	out := ports.CartView{
		Lines:     make([]ports.CartLineView, 0, len(lines)),
		ItemCount: c.ItemCount(),
		Total:     c.Total(products),
	}
	for _, l := range lines {
		lv := ports.CartLineView{ProductID: l.ProductID, Quantity: l.Quantity}
		if p, ok := domain.FindProduct(products, l.ProductID); ok {
			lv.Title = p.Title
			lv.ImageRef = p.ImageRef
			lv.Price = p.Price
			lv.LineTotal = domain.RoundCents(p.Price * float64(l.Quantity))
			lv.Available = true
		}
		out.Lines = append(out.Lines, lv)
	}
	return out
}

// FetchApplier delivers completed fetches into visitor state, dropping
// results whose generation is no longer current.
type FetchApplier struct {
	store  ports.StateStore
	router *ViewRouter
	log    zerolog.Logger
}

func NewFetchApplier(store ports.StateStore, router *ViewRouter, log zerolog.Logger) *FetchApplier {
	return &FetchApplier{store: store, router: router, log: log}
}

var _ ports.FetchSink = (*FetchApplier)(nil)

// Deliver applies res. Fetch failures are logged and applied as empty slices
// so the visitor sees fallback content instead of an error.
func (a *FetchApplier) Deliver(ctx context.Context, res domain.FetchResult) {
	if res.Err != nil {
		a.log.Warn().Err(res.Err).Str("slice", string(res.Slice)).Msg("catalog fetch failed, serving fallback")
		res.Categories, res.Products, res.Portfolio = nil, nil, nil
	}

	var applied bool
	_, _ = a.store.Update(ctx, res.VisitorID, func(st domain.AppState) (domain.AppState, error) {
		st, applied = a.router.Apply(st, res)
		return st, nil
	})
	if !applied {
		metrics.StaleResponsesTotal.Inc()
	}
}
