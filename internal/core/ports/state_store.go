package ports

import (
	"context"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// StateStore owns one AppState per visitor and serializes every transition
// applied to it.
type StateStore interface {
	// Get returns the visitor's state, creating the initial state if needed.
	Get(ctx context.Context, visitorID string) domain.AppState
	// Update runs fn with exclusive access to the visitor's state. The state
	// returned by fn is stored only when fn returns a nil error.
	Update(ctx context.Context, visitorID string, fn func(domain.AppState) (domain.AppState, error)) (domain.AppState, error)
}
