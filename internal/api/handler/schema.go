package handler

import (
	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type filterRequest struct {
	Category string `json:"category"`
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type cartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty"        validate:"required,min=1,max=999"`
}

type mergeCartRequest struct {
	Items []cartLineRequest `json:"items" validate:"required,min=1,dive"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authenticateRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// --- Response types ---

type categoryResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

type portfolioItemResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    *string `json:"category,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	ImageURL    string  `json:"image_url"`
}

type cartLineResponse struct {
	ProductID string  `json:"product_id"`
	Qty       int     `json:"qty"`
	Title     string  `json:"title,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
	Available bool    `json:"available"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     float64            `json:"total"`
}

type filtersResponse struct {
	Products  string `json:"products"`
	Portfolio string `json:"portfolio"`
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type stateResponse struct {
	View                string                  `json:"view"`
	Generation          uint64                  `json:"generation"`
	Trigger             uint64                  `json:"trigger"`
	Categories          []categoryResponse      `json:"categories"`
	Products            []productResponse       `json:"products"`
	Portfolio           []portfolioItemResponse `json:"portfolio"`
	PortfolioCategories []categoryResponse      `json:"portfolio_categories"`
	Filters             filtersResponse         `json:"filters"`
	Cart                cartResponse            `json:"cart"`
	User                *userResponse           `json:"user"`
	DisplayName         string                  `json:"display_name,omitempty"`
}

type checkoutResponse struct {
	Outcome string        `json:"outcome"`
	OrderID string        `json:"order_id,omitempty"`
	Message string        `json:"message,omitempty"`
	State   stateResponse `json:"state"`
}

type contactResponse struct {
	Status string `json:"status"`
}

// --- Mapping ---

func toStateResponse(v *ports.StorefrontView) stateResponse {
	resp := stateResponse{
		View:                string(v.View),
		Generation:          v.Generation,
		Trigger:             v.Trigger,
		Categories:          toCategoryResponses(v.Categories),
		Products:            make([]productResponse, 0, len(v.Products)),
		Portfolio:           make([]portfolioItemResponse, 0, len(v.Portfolio)),
		PortfolioCategories: toCategoryResponses(v.PortfolioCategories),
		Filters:             filtersResponse{Products: v.ProductFilter, Portfolio: v.PortfolioFilter},
		Cart: cartResponse{
			Lines:     make([]cartLineResponse, 0, len(v.Cart.Lines)),
			ItemCount: v.Cart.ItemCount,
			Total:     v.Cart.Total,
		},
		DisplayName: v.DisplayName,
	}
	for _, p := range v.Products {
		resp.Products = append(resp.Products, productResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			ImageURL:    p.ImageRef,
		})
	}
	for _, it := range v.Portfolio {
		resp.Portfolio = append(resp.Portfolio, portfolioItemResponse{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			ClientName:  it.ClientName,
			ImageURL:    it.ImageRef,
		})
	}
	for _, l := range v.Cart.Lines {
		resp.Cart.Lines = append(resp.Cart.Lines, cartLineResponse{
			ProductID: l.ProductID,
			Qty:       l.Quantity,
			Title:     l.Title,
			ImageURL:  l.ImageRef,
			Price:     l.Price,
			LineTotal: l.LineTotal,
			Available: l.Available,
		})
	}
	if v.User != nil {
		resp.User = &userResponse{Email: v.User.Email, Name: v.User.Name}
	}
	return resp
}

func toCategoryResponses(cs []domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, categoryResponse{Key: c.Key, Label: c.Label})
	}
	return out
}

func toCartLines(items []cartLineRequest) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		out = append(out, domain.CartLine{ProductID: it.ProductID, Quantity: it.Qty})
	}
	return out
}
