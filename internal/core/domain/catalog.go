package domain

// Category is a product taxonomy entry. Key is a stable slug.
type Category struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Product is a purchasable catalog entry. Price is non-negative.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"category"`
	ImageRef    string  `json:"image_ref" yaml:"image_ref"`
}

// PortfolioItem is a showcase piece. Category and ClientName are optional and
// nil when the source omitted them.
type PortfolioItem struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Category    *string `json:"category,omitempty" yaml:"category,omitempty"`
	ClientName  *string `json:"client_name,omitempty" yaml:"client_name,omitempty"`
	ImageRef    string  `json:"image_ref" yaml:"image_ref"`
}

// CategoryKey returns the item's category or "" when absent.
func (p PortfolioItem) CategoryKey() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// Catalog is the effective data set rendered to a visitor after reconciliation.
type Catalog struct {
	Categories          []Category
	Products            []Product
	Portfolio           []PortfolioItem
	PortfolioCategories []Category
}

// FindProduct looks a product up by id.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
