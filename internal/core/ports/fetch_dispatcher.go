package ports

import (
	"context"

	"github.com/laserstudio/storefront/internal/core/domain"
)

// FetchDispatcher issues tagged fetches without blocking the caller.
type FetchDispatcher interface {
	Dispatch(reqs []domain.FetchRequest)
}

// FetchSink receives completed fetches.
type FetchSink interface {
	Deliver(ctx context.Context, res domain.FetchResult)
}
