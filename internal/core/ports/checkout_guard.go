package ports

import "context"

// CheckoutGuard prevents the same cart from being submitted twice at once.
type CheckoutGuard interface {
	// Acquire reports false when a checkout with this fingerprint is already
	// in flight or was committed within the guard's TTL.
	Acquire(ctx context.Context, visitorID, fingerprint string) (bool, error)
	// Release drops the guard after a failed submission.
	Release(ctx context.Context, visitorID, fingerprint string) error
}
