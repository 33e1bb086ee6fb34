package service

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/fallback"
)

// ReconcileCollection returns remote when it has at least one element and
// fallback otherwise. The two are never spliced together.
func ReconcileCollection[T any](remote, fallback []T) []T {
	if len(remote) > 0 {
		return slices.Clone(remote)
	}
	return slices.Clone(fallback)
}

// MergeCategories seeds a key→label mapping from builtin and overlays remote
// on top of it. Built-in keys keep their position; remote-only keys are
// appended in the order they arrive. Remote labels win on conflicts.
func MergeCategories(builtin, remote []domain.Category) []domain.Category {
	out := make([]domain.Category, 0, len(builtin)+len(remote))
	index := make(map[string]int, len(builtin)+len(remote))

	put := func(c domain.Category) {
		if c.Key == "" {
			return
		}
		if i, ok := index[c.Key]; ok {
			out[i].Label = c.Label
			return
		}
		index[c.Key] = len(out)
		out = append(out, c)
	}

	for _, c := range builtin {
		put(c)
	}
	for _, c := range remote {
		put(c)
	}
	return out
}

// PortfolioCategories derives the portfolio taxonomy: the seed keys first,
// then every key observed in items, deduplicated. Labels are the key with its
// first character upper-cased.
func PortfolioCategories(items []domain.PortfolioItem, seed []string) []domain.Category {
	out := make([]domain.Category, 0, len(seed)+len(items))
	seen := make(map[string]struct{}, len(seed)+len(items))

	add := func(key string) {
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, domain.Category{Key: key, Label: capitalize(key)})
	}

	for _, k := range seed {
		add(k)
	}
	for _, it := range items {
		add(it.CategoryKey())
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Reconciler merges remote catalog slices with the built-in catalog.
type Reconciler struct {
	fallback fallback.Data
}

func NewReconciler(fb fallback.Data) *Reconciler {
	return &Reconciler{fallback: fb}
}

// Reconcile never fails: a missing slice resolves to fallback content.
func (r *Reconciler) Reconcile(remote domain.RemoteCatalog) domain.Catalog {
	portfolio := ReconcileCollection(remote.Portfolio, r.fallback.Portfolio)
	return domain.Catalog{
		Categories:          MergeCategories(r.fallback.Categories, remote.Categories),
		Products:            ReconcileCollection(remote.Products, r.fallback.Products),
		Portfolio:           portfolio,
		PortfolioCategories: PortfolioCategories(portfolio, r.fallback.PortfolioSeed),
	}
}

// Fallback reports which slices of remote would be served from built-in data.
func (r *Reconciler) Fallback(remote domain.RemoteCatalog) (products, portfolio bool) {
	return len(remote.Products) == 0, len(remote.Portfolio) == 0
}
