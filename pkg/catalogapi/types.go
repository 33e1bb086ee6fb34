// Package catalogapi holds the JSON wire format of the remote catalog service.
// It is shared by the storefront client and the reference backend.
package catalogapi

import (
	"bytes"
	"encoding/json"
)

// ID is an identifier that decodes from either a JSON string or a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Category as served by GET /categories. Older deployments send title
// instead of name.
type Category struct {
	ID    ID     `json:"id,omitempty"`
	Slug  string `json:"slug"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

// Product as served by GET /products.
type Product struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

// PortfolioItem as served by GET /portfolio. Older deployments send client
// instead of client_name.
type PortfolioItem struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    *string `json:"category,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	Client      *string `json:"client,omitempty"`
	ImageURL    string  `json:"image_url"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email string `json:"email"`
}

// AuthRequest is the body of POST /auth/signup and POST /auth/login.
type AuthRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the session object returned by the login endpoints.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// OrderItem is one cart line in an order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// OrderRequest is the body of POST /order.
type OrderRequest struct {
	UserEmail    string      `json:"user_email"`
	Items        []OrderItem `json:"items"`
	Notes        string      `json:"notes"`
	ContactPhone string      `json:"contact_phone"`
}

// OrderResponse is the success body of POST /order. Extra fields are ignored.
type OrderResponse struct {
	ID ID `json:"id"`
}

// ContactRequest is the body of POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorResponse is the error body used by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}

// Collection is a list response, accepted either as a bare array or wrapped
// as {"items": [...]}.
type Collection[T any] []T

func (c *Collection[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var env struct {
			Items []T `json:"items"`
		}
		if err := json.Unmarshal(b, &env); err != nil {
			return err
		}
		*c = env.Items
		return nil
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*c = items
	return nil
}
