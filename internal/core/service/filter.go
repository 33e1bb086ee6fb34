package service

import "github.com/laserstudio/storefront/internal/core/domain"

// FilterProducts keeps products whose category equals active. An empty or
// "all" selection returns the input unchanged.
func FilterProducts(products []domain.Product, active string) []domain.Product {
	return filterByCategory(products, active, func(p domain.Product) string { return p.Category })
}

// FilterPortfolio applies the same rule to portfolio items. Items without a
// category only appear when no filter is active.
func FilterPortfolio(items []domain.PortfolioItem, active string) []domain.PortfolioItem {
	return filterByCategory(items, active, domain.PortfolioItem.CategoryKey)
}

func filterByCategory[T any](items []T, active string, key func(T) string) []T {
	if active == "" || active == domain.AllCategories {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) == active {
			out = append(out, it)
		}
	}
	return out
}
