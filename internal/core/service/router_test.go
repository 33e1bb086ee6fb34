package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
)

func TestViewRouter_EnterTagsRequests(t *testing.T) {
	r := NewViewRouter(zerolog.Nop())

	st, reqs := r.Enter(domain.NewAppState(), "v1", domain.ViewProducts)
	if st.Generation != 1 {
		t.Fatalf("expected generation 1, got %d", st.Generation)
	}

	want := []domain.FetchRequest{
		{VisitorID: "v1", Slice: domain.SliceCategories, Generation: 1},
		{VisitorID: "v1", Slice: domain.SliceProducts, Generation: 1},
	}
	if diff := cmp.Diff(want, reqs); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestViewRouter_EnterWithoutDataStillBumpsGeneration(t *testing.T) {
	r := NewViewRouter(zerolog.Nop())

	st, reqs := r.Enter(domain.NewAppState(), "v1", domain.ViewContact)
	if len(reqs) != 0 {
		t.Fatalf("contact fetches nothing, got %v", reqs)
	}
	if st.Generation != 1 || st.View != domain.ViewContact {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestViewRouter_ApplyDropsStaleResult(t *testing.T) {
	r := NewViewRouter(zerolog.Nop())

	st, first := r.Enter(domain.NewAppState(), "v1", domain.ViewProducts)
	st, _ = r.Enter(st, "v1", domain.ViewPortfolio)

	stale := domain.FetchResult{
		FetchRequest: first[1],
		Products:     []domain.Product{{ID: "late"}},
	}
	next, applied := r.Apply(st, stale)
	if applied {
		t.Fatalf("stale result must be dropped")
	}
	if next.Remote.Products != nil {
		t.Fatalf("stale products leaked into state: %+v", next.Remote.Products)
	}
}

func TestViewRouter_ApplyCurrentResult(t *testing.T) {
	r := NewViewRouter(zerolog.Nop())

	st, reqs := r.Enter(domain.NewAppState(), "v1", domain.ViewClients)
	res := domain.FetchResult{
		FetchRequest: reqs[0],
		Portfolio:    []domain.PortfolioItem{{ID: "pf-9"}},
	}

	next, applied := r.Apply(st, res)
	if !applied {
		t.Fatalf("current result must be applied")
	}
	if len(next.Remote.Portfolio) != 1 || next.Remote.Portfolio[0].ID != "pf-9" {
		t.Fatalf("unexpected portfolio: %+v", next.Remote.Portfolio)
	}
}

func TestViewRouter_ReenteringSameViewInvalidatesInFlight(t *testing.T) {
	r := NewViewRouter(zerolog.Nop())

	st, first := r.Enter(domain.NewAppState(), "v1", domain.ViewProducts)
	st, second := r.Enter(st, "v1", domain.ViewProducts)

	if first[0].Generation == second[0].Generation {
		t.Fatalf("re-entry must issue a new generation")
	}
	if _, applied := r.Apply(st, domain.FetchResult{FetchRequest: first[0]}); applied {
		t.Fatalf("result from the first entry must be dropped")
	}
}
