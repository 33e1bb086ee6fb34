package service

import (
	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// ViewRouter owns view selection and the generation tag used to discard
// responses that arrive after the visitor has moved on.
type ViewRouter struct {
	log zerolog.Logger
}

func NewViewRouter(log zerolog.Logger) *ViewRouter {
	return &ViewRouter{log: log}
}

// Enter moves s to view v. Every entry starts a new generation and returns
// exactly one tagged request per slice the view needs.
func (r *ViewRouter) Enter(s domain.AppState, visitorID string, v domain.View) (domain.AppState, []domain.FetchRequest) {
	s = s.WithView(v)
	s.Generation++

	needed := v.Slices()
	reqs := make([]domain.FetchRequest, 0, len(needed))
	for _, sl := range needed {
		reqs = append(reqs, domain.FetchRequest{VisitorID: visitorID, Slice: sl, Generation: s.Generation})
	}
	return s, reqs
}

// Apply stores res in its slice when it belongs to the current generation.
// The second return value is false when res was stale and dropped. A failed
// fetch applies as an empty collection.
func (r *ViewRouter) Apply(s domain.AppState, res domain.FetchResult) (domain.AppState, bool) {
	if res.Generation != s.Generation {
		r.log.Debug().
			Str("visitor", res.VisitorID).
			Str("slice", string(res.Slice)).
			Uint64("generation", res.Generation).
			Uint64("current", s.Generation).
			Msg("stale fetch result dropped")
		return s, false
	}

	switch res.Slice {
	case domain.SliceCategories:
		s.Remote.Categories = res.Categories
	case domain.SliceProducts:
		s.Remote.Products = res.Products
	case domain.SlicePortfolio:
		s.Remote.Portfolio = res.Portfolio
	}
	return s, true
}
