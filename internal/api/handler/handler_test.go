package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/laserstudio/storefront/internal/api/middleware"
	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

type stubStorefrontService struct {
	stateFn        func(ctx context.Context, vid string) (*ports.StorefrontView, error)
	enterViewFn    func(ctx context.Context, vid string, v domain.View) (*ports.StorefrontView, error)
	setFilterFn    func(ctx context.Context, vid string, d domain.FilterDomain, key string) (*ports.StorefrontView, error)
	addFn          func(ctx context.Context, vid, productID string) (*ports.StorefrontView, error)
	removeFn       func(ctx context.Context, vid, productID string) (*ports.StorefrontView, error)
	mergeFn        func(ctx context.Context, vid string, lines []domain.CartLine) (*ports.StorefrontView, error)
	loginFn        func(ctx context.Context, vid, email string) (*ports.StorefrontView, error)
	authenticateFn func(ctx context.Context, vid string, mode domain.AuthMode, creds domain.Credentials) (*ports.StorefrontView, error)
	signOutFn      func(ctx context.Context, vid string) (*ports.StorefrontView, error)
	checkoutFn     func(ctx context.Context, vid string) (*ports.CheckoutResult, *ports.StorefrontView, error)
	contactFn      func(ctx context.Context, c domain.Contact) (string, error)
}

func (s *stubStorefrontService) State(ctx context.Context, vid string) (*ports.StorefrontView, error) {
	return s.stateFn(ctx, vid)
}

func (s *stubStorefrontService) EnterView(ctx context.Context, vid string, v domain.View) (*ports.StorefrontView, error) {
	return s.enterViewFn(ctx, vid, v)
}

func (s *stubStorefrontService) SetFilter(ctx context.Context, vid string, d domain.FilterDomain, key string) (*ports.StorefrontView, error) {
	return s.setFilterFn(ctx, vid, d, key)
}

func (s *stubStorefrontService) AddToCart(ctx context.Context, vid, productID string) (*ports.StorefrontView, error) {
	return s.addFn(ctx, vid, productID)
}

func (s *stubStorefrontService) RemoveFromCart(ctx context.Context, vid, productID string) (*ports.StorefrontView, error) {
	return s.removeFn(ctx, vid, productID)
}

func (s *stubStorefrontService) MergeCart(ctx context.Context, vid string, lines []domain.CartLine) (*ports.StorefrontView, error) {
	return s.mergeFn(ctx, vid, lines)
}

func (s *stubStorefrontService) Login(ctx context.Context, vid, email string) (*ports.StorefrontView, error) {
	return s.loginFn(ctx, vid, email)
}

func (s *stubStorefrontService) Authenticate(ctx context.Context, vid string, mode domain.AuthMode, creds domain.Credentials) (*ports.StorefrontView, error) {
	return s.authenticateFn(ctx, vid, mode, creds)
}

func (s *stubStorefrontService) SignOut(ctx context.Context, vid string) (*ports.StorefrontView, error) {
	return s.signOutFn(ctx, vid)
}

func (s *stubStorefrontService) Checkout(ctx context.Context, vid string) (*ports.CheckoutResult, *ports.StorefrontView, error) {
	return s.checkoutFn(ctx, vid)
}

func (s *stubStorefrontService) SubmitContact(ctx context.Context, c domain.Contact) (string, error) {
	return s.contactFn(ctx, c)
}

func sampleView() *ports.StorefrontView {
	return &ports.StorefrontView{
		View:       domain.ViewProducts,
		Generation: 2,
		Categories: []domain.Category{{Key: "wood", Label: "Wood"}},
		Products:   []domain.Product{{ID: "wood-1", Title: "Board", Price: 89, Category: "wood", ImageRef: "/b.jpg"}},
		Cart: ports.CartView{
			Lines:     []ports.CartLineView{{ProductID: "wood-1", Quantity: 2, Price: 89, LineTotal: 178, Available: true}},
			ItemCount: 2,
			Total:     178,
		},
	}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextVisitorID, "visitor-1")
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestStorefrontHandler_State(t *testing.T) {
	stub := &stubStorefrontService{
		stateFn: func(_ context.Context, vid string) (*ports.StorefrontView, error) {
			if vid != "visitor-1" {
				t.Fatalf("unexpected visitor %q", vid)
			}
			return sampleView(), nil
		},
	}
	c, rec := newContext(http.MethodGet, "/v1/state", "")

	if err := NewStorefrontHandler(stub).State(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp stateResponse
	decode(t, rec, &resp)
	if resp.View != "products" || resp.Cart.Total != 178 || resp.Products[0].ImageURL != "/b.jpg" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User != nil {
		t.Fatalf("expected anonymous response")
	}
}

func TestStorefrontHandler_MissingVisitor(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/state", nil), httptest.NewRecorder())

	err := NewStorefrontHandler(&stubStorefrontService{}).State(c)
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestStorefrontHandler_EnterView(t *testing.T) {
	var got domain.View
	stub := &stubStorefrontService{
		enterViewFn: func(_ context.Context, _ string, v domain.View) (*ports.StorefrontView, error) {
			got = v
			return sampleView(), nil
		},
	}
	h := NewStorefrontHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/views/portfolio", "")
	c.SetParamNames("view")
	c.SetParamValues("portfolio")
	if err := h.EnterView(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != domain.ViewPortfolio || rec.Code != http.StatusOK {
		t.Fatalf("unexpected view %q / status %d", got, rec.Code)
	}

	c, _ = newContext(http.MethodPost, "/v1/views/admin", "")
	c.SetParamNames("view")
	c.SetParamValues("admin")
	if err := h.EnterView(c); !errors.Is(err, domain.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}

func TestStorefrontHandler_SetFilter(t *testing.T) {
	stub := &stubStorefrontService{
		setFilterFn: func(_ context.Context, _ string, d domain.FilterDomain, key string) (*ports.StorefrontView, error) {
			if d != domain.FilterPortfolio || key != "signage" {
				t.Fatalf("unexpected args %q %q", d, key)
			}
			v := sampleView()
			v.PortfolioFilter = key
			return v, nil
		},
	}
	c, rec := newContext(http.MethodPut, "/v1/filters/portfolio", `{"category":"signage"}`)
	c.SetParamNames("domain")
	c.SetParamValues("portfolio")

	if err := NewStorefrontHandler(stub).SetFilter(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp stateResponse
	decode(t, rec, &resp)
	if resp.Filters.Portfolio != "signage" {
		t.Fatalf("unexpected filters %+v", resp.Filters)
	}
}

func TestCartHandler_AddItemValidation(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/v1/cart/items", `{}`)

	err := NewCartHandler(&stubStorefrontService{}).AddItem(c)
	if httpStatus(t, err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestCartHandler_AddItemUnknownProduct(t *testing.T) {
	stub := &stubStorefrontService{
		addFn: func(context.Context, string, string) (*ports.StorefrontView, error) {
			return nil, domain.ErrUnknownProduct
		},
	}
	c, _ := newContext(http.MethodPost, "/v1/cart/items", `{"product_id":"ghost"}`)

	err := NewCartHandler(stub).AddItem(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity || he.Message != "product is not in the catalog" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCartHandler_Merge(t *testing.T) {
	var got []domain.CartLine
	stub := &stubStorefrontService{
		mergeFn: func(_ context.Context, _ string, lines []domain.CartLine) (*ports.StorefrontView, error) {
			got = lines
			return sampleView(), nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/cart/merge", `{"items":[{"product_id":"wood-1","qty":2}]}`)

	if err := NewCartHandler(stub).Merge(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("unexpected merge: %+v", got)
	}

	c, _ = newContext(http.MethodPost, "/v1/cart/merge", `{"items":[{"product_id":"wood-1","qty":0}]}`)
	if err := NewCartHandler(stub).Merge(c); httpStatus(t, err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for qty 0, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/v1/cart/merge", `{"items":[{"product_id":"wood-1","qty":9223372036854775807}]}`)
	if err := NewCartHandler(stub).Merge(c); httpStatus(t, err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for qty above the cap, got %v", err)
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	stub := &stubStorefrontService{
		removeFn: func(_ context.Context, _ string, id string) (*ports.StorefrontView, error) {
			if id != "wood-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return sampleView(), nil
		},
	}
	c, rec := newContext(http.MethodDelete, "/v1/cart/items/wood-1", "")
	c.SetParamNames("product_id")
	c.SetParamValues("wood-1")

	if err := NewCartHandler(stub).RemoveItem(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("unexpected result: %v / %d", err, rec.Code)
	}
}

func TestSessionHandler_LoginSurfacesDetail(t *testing.T) {
	stub := &stubStorefrontService{
		loginFn: func(context.Context, string, string) (*ports.StorefrontView, error) {
			return nil, &domain.RemoteError{Kind: domain.ErrServerRejected, Status: 404, Detail: "No such user"}
		},
	}
	c, _ := newContext(http.MethodPost, "/v1/session/login", `{"email":"ana@example.com"}`)

	err := NewSessionHandler(stub).Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound || he.Message != "No such user" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionHandler_LoginNetworkFailure(t *testing.T) {
	stub := &stubStorefrontService{
		loginFn: func(context.Context, string, string) (*ports.StorefrontView, error) {
			return nil, &domain.RemoteError{Kind: domain.ErrNetworkFailure}
		},
	}
	c, _ := newContext(http.MethodPost, "/v1/session/login", `{"email":"ana@example.com"}`)

	err := NewSessionHandler(stub).Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable || he.Message != "Network error" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionHandler_LoginInvalidEmail(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/v1/session/login", `{"email":"not-an-email"}`)

	err := NewSessionHandler(&stubStorefrontService{}).Login(c)
	if httpStatus(t, err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestSessionHandler_Signup(t *testing.T) {
	stub := &stubStorefrontService{
		authenticateFn: func(_ context.Context, _ string, mode domain.AuthMode, creds domain.Credentials) (*ports.StorefrontView, error) {
			if mode != domain.AuthModeSignup || creds.Name != "Ana" {
				t.Fatalf("unexpected args %q %+v", mode, creds)
			}
			v := sampleView()
			v.User = &domain.User{Email: creds.Email, Name: creds.Name}
			v.DisplayName = "Ana"
			return v, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/session/signup", `{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	if err := NewSessionHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp stateResponse
	decode(t, rec, &resp)
	if resp.User == nil || resp.User.Email != "ana@example.com" || resp.DisplayName != "Ana" {
		t.Fatalf("unexpected user in response: %+v", resp)
	}
}

func TestSessionHandler_SignupShortPassword(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/v1/session/signup", `{"email":"ana@example.com","password":"abc"}`)

	err := NewSessionHandler(&stubStorefrontService{}).Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity || he.Message != "password must be at least 6" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckoutHandler_LoginRequired(t *testing.T) {
	stub := &stubStorefrontService{
		checkoutFn: func(context.Context, string) (*ports.CheckoutResult, *ports.StorefrontView, error) {
			v := sampleView()
			v.View = domain.ViewAccount
			return &ports.CheckoutResult{Outcome: ports.CheckoutLoginRequired}, v, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/checkout", "")

	if err := NewCheckoutHandler(stub).Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp checkoutResponse
	decode(t, rec, &resp)
	if resp.Outcome != "login_required" || resp.State.View != "account" || resp.OrderID != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCheckoutHandler_Placed(t *testing.T) {
	stub := &stubStorefrontService{
		checkoutFn: func(context.Context, string) (*ports.CheckoutResult, *ports.StorefrontView, error) {
			return &ports.CheckoutResult{Outcome: ports.CheckoutPlaced, OrderID: "42", Message: "Order placed"},
				&ports.StorefrontView{View: domain.ViewProducts}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/checkout", "")

	if err := NewCheckoutHandler(stub).Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp checkoutResponse
	decode(t, rec, &resp)
	if resp.Outcome != "placed" || resp.OrderID != "42" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.State.Cart.Lines == nil {
		t.Fatalf("cart lines must render as an empty array")
	}
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	stub := &stubStorefrontService{
		checkoutFn: func(context.Context, string) (*ports.CheckoutResult, *ports.StorefrontView, error) {
			return nil, sampleView(), domain.ErrEmptyCart
		},
	}
	c, _ := newContext(http.MethodPost, "/v1/checkout", "")

	err := NewCheckoutHandler(stub).Checkout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity || he.Message != "cart is empty" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckoutHandler_ServerErrorUsesFallbackText(t *testing.T) {
	stub := &stubStorefrontService{
		checkoutFn: func(context.Context, string) (*ports.CheckoutResult, *ports.StorefrontView, error) {
			return nil, sampleView(), &domain.RemoteError{Kind: domain.ErrServerRejected, Status: 500}
		},
	}
	c, _ := newContext(http.MethodPost, "/v1/checkout", "")

	err := NewCheckoutHandler(stub).Checkout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadGateway || he.Message != orderFailedText {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckoutHandler_Contact(t *testing.T) {
	stub := &stubStorefrontService{
		contactFn: func(_ context.Context, c domain.Contact) (string, error) {
			if c.Message != "Engrave 40 coasters" {
				t.Fatalf("unexpected contact %+v", c)
			}
			return "We got your message. Thank you!", nil
		},
	}
	c, rec := newContext(http.MethodPost, "/v1/contact", `{"name":"Ana","email":"ana@example.com","message":"Engrave 40 coasters"}`)

	if err := NewCheckoutHandler(stub).Contact(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp contactResponse
	decode(t, rec, &resp)
	if resp.Status != "We got your message. Thank you!" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}
