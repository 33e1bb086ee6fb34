// Package catalogclient talks to the remote catalog/order/auth service over
// HTTP JSON. Calls are one-shot; every failure is returned as a
// *domain.RemoteError.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
	"github.com/laserstudio/storefront/internal/pkg/metrics"
	"github.com/laserstudio/storefront/pkg/catalogapi"
)

const maxBodyBytes = 4 << 20

// Config captures the settings for reaching the remote service. A zero
// Timeout means requests never time out.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		log:     log,
	}
}

var _ ports.CatalogClient = (*Client)(nil)

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var raw catalogapi.Collection[catalogapi.Category]
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(raw))
	for _, rc := range raw {
		if c, ok := toCategory(rc); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var raw catalogapi.Collection[catalogapi.Product]
	if err := c.do(ctx, http.MethodGet, "/products", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(raw))
	for _, rp := range raw {
		if p, ok := toProduct(rp); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Client) FetchPortfolio(ctx context.Context) ([]domain.PortfolioItem, error) {
	var raw catalogapi.Collection[catalogapi.PortfolioItem]
	if err := c.do(ctx, http.MethodGet, "/portfolio", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.PortfolioItem, 0, len(raw))
	for _, ri := range raw {
		out = append(out, toPortfolioItem(ri))
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, email string) (*domain.User, error) {
	var u catalogapi.User
	if err := c.do(ctx, http.MethodPost, "/login", catalogapi.LoginRequest{Email: email}, &u); err != nil {
		return nil, err
	}
	return toUser(u, email), nil
}

func (c *Client) Authenticate(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (*domain.User, error) {
	path := "/auth/login"
	if mode == domain.AuthModeSignup {
		path = "/auth/signup"
	}
	body := catalogapi.AuthRequest{Name: creds.Name, Email: creds.Email, Password: creds.Password}

	var u catalogapi.User
	if err := c.do(ctx, http.MethodPost, path, body, &u); err != nil {
		return nil, err
	}
	return toUser(u, creds.Email), nil
}

func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (*domain.OrderReceipt, error) {
	body := catalogapi.OrderRequest{
		UserEmail:    order.UserEmail,
		Items:        make([]catalogapi.OrderItem, 0, len(order.Lines)),
		Notes:        order.Notes,
		ContactPhone: order.ContactPhone,
	}
	for _, l := range order.Lines {
		body.Items = append(body.Items, catalogapi.OrderItem{ProductID: l.ProductID, Qty: l.Quantity})
	}

	var resp catalogapi.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/order", body, &resp); err != nil {
		return nil, err
	}
	return &domain.OrderReceipt{ID: string(resp.ID)}, nil
}

func (c *Client) SubmitContact(ctx context.Context, contact domain.Contact) error {
	body := catalogapi.ContactRequest{Name: contact.Name, Email: contact.Email, Message: contact.Message}
	return c.do(ctx, http.MethodPost, "/contact", body, nil)
}

// Ping reports whether the remote service answers at all. Any HTTP response,
// whatever its status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/categories", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	defer func() {
		metrics.RemoteRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.RemoteError{Kind: domain.ErrNetworkFailure}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("remote request failed")
		return &domain.RemoteError{Kind: domain.ErrNetworkFailure}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.RemoteError{Kind: domain.ErrNetworkFailure, Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteError{
			Kind:   domain.ErrServerRejected,
			Status: resp.StatusCode,
			Detail: detail(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("malformed response body")
		return &domain.RemoteError{Kind: domain.ErrServerRejected, Status: resp.StatusCode}
	}
	return nil
}

// detail extracts a string "detail" field from an error body. Structured
// details, such as validation error lists, are ignored.
func detail(raw []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err != nil {
		return ""
	}
	return s
}
