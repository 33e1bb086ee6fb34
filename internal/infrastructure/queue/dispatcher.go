package queue

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
	"github.com/laserstudio/storefront/internal/pkg/metrics"
)

const (
	defaultQueueSize = 256
	defaultTimeout   = 30 * time.Second
)

// ErrQueueFull is carried by the result of a request that was dropped because
// the queue had no room. The visitor is served fallback content for it.
var ErrQueueFull = errors.New("fetch queue full")

// Config tunes the dispatcher. Zero values select the defaults; a negative
// Timeout leaves background fetches unbounded.
type Config struct {
	QueueSize int
	Timeout   time.Duration
}

// Dispatcher runs tagged catalog fetches in the background. Every request runs
// in its own goroutine, so a slow or hung remote call only delays the slice it
// was issued for. Ordering between requests is not preserved; the generation
// tag on each result decides whether it still applies.
type Dispatcher struct {
	queue   chan domain.FetchRequest
	client  ports.CatalogClient
	sink    ports.FetchSink
	timeout time.Duration
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher. Call Start before dispatching.
func NewDispatcher(cfg Config, client ports.CatalogClient, sink ports.FetchSink, log zerolog.Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Dispatcher{
		queue:   make(chan domain.FetchRequest, cfg.QueueSize),
		client:  client,
		sink:    sink,
		timeout: cfg.Timeout,
		log:     log,
	}
}

var _ ports.FetchDispatcher = (*Dispatcher)(nil)

// Start launches the loop that hands queued requests to fetch goroutines. It
// stops when ctx is cancelled; fetches already running see the same ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

// Dispatch enqueues reqs and never blocks. A request that finds the queue full
// is dropped and delivered as a failure.
func (d *Dispatcher) Dispatch(reqs []domain.FetchRequest) {
	for _, r := range reqs {
		select {
		case d.queue <- r:
			metrics.FetchQueueDepth.Set(float64(len(d.queue)))
		default:
			metrics.FetchDroppedTotal.WithLabelValues(string(r.Slice)).Inc()
			d.log.Warn().
				Str("visitor", r.VisitorID).
				Str("slice", string(r.Slice)).
				Msg("fetch queue full, serving fallback")
			go d.sink.Deliver(context.Background(), domain.FetchResult{FetchRequest: r, Err: ErrQueueFull})
		}
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-d.queue:
			metrics.FetchQueueDepth.Set(float64(len(d.queue)))
			go d.handle(ctx, req)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, req domain.FetchRequest) {
	metrics.FetchInFlight.Inc()
	defer metrics.FetchInFlight.Dec()

	fetchCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	d.sink.Deliver(ctx, d.fetch(fetchCtx, req))
}

// fetch performs one request. It never returns a nil result: failures are
// carried in FetchResult.Err.
func (d *Dispatcher) fetch(ctx context.Context, req domain.FetchRequest) domain.FetchResult {
	res := domain.FetchResult{FetchRequest: req}
	start := time.Now()

	var n int
	switch req.Slice {
	case domain.SliceCategories:
		res.Categories, res.Err = d.client.FetchCategories(ctx)
		n = len(res.Categories)
	case domain.SliceProducts:
		res.Products, res.Err = d.client.FetchProducts(ctx)
		n = len(res.Products)
	case domain.SlicePortfolio:
		res.Portfolio, res.Err = d.client.FetchPortfolio(ctx)
		n = len(res.Portfolio)
	}

	result := "ok"
	switch {
	case res.Err != nil:
		result = "error"
	case n == 0:
		result = "empty"
	}
	metrics.CatalogFetchTotal.WithLabelValues(string(req.Slice), result).Inc()

	d.log.Debug().
		Str("visitor", req.VisitorID).
		Str("slice", string(req.Slice)).
		Uint64("generation", req.Generation).
		Int("items", n).
		Dur("took", time.Since(start)).
		Msg("catalog fetch finished")
	return res
}
