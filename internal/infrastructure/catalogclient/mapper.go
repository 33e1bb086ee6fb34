package catalogclient

import (
	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/pkg/catalogapi"
)

// toCategory keys a category by slug. Entries without a slug are unusable.
func toCategory(c catalogapi.Category) (domain.Category, bool) {
	if c.Slug == "" {
		return domain.Category{}, false
	}
	label := c.Name
	if label == "" {
		label = c.Title
	}
	if label == "" {
		label = c.Slug
	}
	return domain.Category{Key: c.Slug, Label: label}, true
}

// toProduct drops products without an id; they could never be added to a
// cart or priced.
func toProduct(p catalogapi.Product) (domain.Product, bool) {
	if p.ID == "" {
		return domain.Product{}, false
	}
	price := p.Price
	if price < 0 {
		price = 0
	}
	return domain.Product{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Price:       price,
		Category:    p.Category,
		ImageRef:    p.ImageURL,
	}, true
}

func toPortfolioItem(p catalogapi.PortfolioItem) domain.PortfolioItem {
	client := p.ClientName
	if client == nil {
		client = p.Client
	}
	return domain.PortfolioItem{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Category:    nonEmpty(p.Category),
		ClientName:  nonEmpty(client),
		ImageRef:    p.ImageURL,
	}
}

// toUser falls back to the submitted email when the server omits it.
func toUser(u catalogapi.User, email string) *domain.User {
	if u.Email == "" {
		u.Email = email
	}
	return &domain.User{Email: u.Email, Name: u.Name}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
