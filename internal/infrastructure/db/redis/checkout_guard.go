package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/laserstudio/storefront/internal/core/ports"
)

const defaultGuardTTL = 30 * time.Second

// CheckoutGuard dedupes order submissions with SET NX.
// Key format: checkout:<visitor_id>:<cart_fingerprint>
type CheckoutGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutGuard wraps client. A committed checkout stays guarded for ttl;
// ttl <= 0 selects defaultGuardTTL.
func NewCheckoutGuard(client *redis.Client, ttl time.Duration) *CheckoutGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &CheckoutGuard{client: client, ttl: ttl}
}

var _ ports.CheckoutGuard = (*CheckoutGuard)(nil)

// Acquire reports false when the same cart is already being or was recently
// submitted by this visitor.
func (g *CheckoutGuard) Acquire(ctx context.Context, visitorID, fingerprint string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(visitorID, fingerprint), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("checkout guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the key so a failed checkout can be tried again.
func (g *CheckoutGuard) Release(ctx context.Context, visitorID, fingerprint string) error {
	if err := g.client.Del(ctx, g.key(visitorID, fingerprint)).Err(); err != nil {
		return fmt.Errorf("checkout guard release: %w", err)
	}
	return nil
}

func (g *CheckoutGuard) key(visitorID, fingerprint string) string {
	return fmt.Sprintf("checkout:%s:%s", visitorID, fingerprint)
}
