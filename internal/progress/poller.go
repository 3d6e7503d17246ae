package progress

import (
	"context"
	"time"

	"github.com/Garsondee/skill-constellation/pkg/logger"
	"github.com/Garsondee/skill-constellation/pkg/metrics"
)

// Fetcher returns the current progress mapping.
type Fetcher interface {
	Progress(ctx context.Context) (map[string]float64, error)
}

// Source labels where an Update came from.
type Source string

const (
	SourceAPI    Source = "api"
	SourceDemo   Source = "demo"
	SourceStatic Source = "static"
)

// Update is one progress mapping, or a failed refresh when Err is set.
type Update struct {
	Progress map[string]float64
	Source   Source
	Err      error
	At       time.Time
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithDemoFallback delivers DemoProgress when the first fetch fails.
func WithDemoFallback(on bool) PollerOption {
	return func(p *Poller) { p.fallback = on }
}

// WithLogger sets the poller's logger.
func WithLogger(l logger.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records fetch outcomes on m.
func WithMetrics(m *metrics.Manager) PollerOption {
	return func(p *Poller) { p.metrics = m }
}

// Poller refreshes progress on an interval and on demand. The consumer reads
// Updates from its own goroutine; only the newest pending mapping is kept.
type Poller struct {
	fetch    Fetcher
	interval time.Duration
	fallback bool
	log      logger.Logger
	metrics  *metrics.Manager

	updates chan Update
	trigger chan struct{}

	delivered bool // a mapping (real or demo) has been published
	now       func() time.Time
}

// NewPoller creates a poller. Run must be called to start it.
func NewPoller(f Fetcher, interval time.Duration, opts ...PollerOption) *Poller {
	p := &Poller{
		fetch:    f,
		interval: interval,
		log:      logger.Nop(),
		updates:  make(chan Update, 1),
		trigger:  make(chan struct{}, 1),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Updates is the delivery channel. It is never closed.
func (p *Poller) Updates() <-chan Update { return p.updates }

// Trigger requests a refresh without waiting for the interval.
// Requests made while one is pending are merged.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run fetches once immediately, then on every tick or Trigger until ctx ends.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-p.trigger:
		}
		p.poll(ctx)
	}
}

func (p *Poller) poll(ctx context.Context) {
	start := p.now()
	m, err := p.fetch.Progress(ctx)
	took := p.now().Sub(start)
	if ctx.Err() != nil {
		return
	}
	if err == nil {
		p.metrics.ObserveFetch(metrics.FetchOK, took)
		p.log.Debug(ctx, "progress fetched", logger.Int("skills", len(m)))
		p.publish(Update{Progress: m, Source: SourceAPI, At: p.now()})
		return
	}

	p.metrics.ObserveFetch(metrics.FetchError, took)
	p.log.Warn(ctx, "progress fetch failed", logger.Error(err))
	if p.fallback && !p.delivered {
		p.metrics.ObserveFetch(metrics.FetchFallback, 0)
		p.log.Info(ctx, "showing demo progress")
		p.publish(Update{Progress: DemoProgress(), Source: SourceDemo, Err: err, At: p.now()})
		return
	}
	// Failures never displace a pending mapping.
	select {
	case p.updates <- Update{Source: SourceAPI, Err: err, At: p.now()}:
	default:
	}
}

// publish replaces any pending update with u. Only Run sends, so after the
// stale value is drained there is room.
func (p *Poller) publish(u Update) {
	p.delivered = true
	select {
	case p.updates <- u:
		return
	default:
	}
	select {
	case <-p.updates:
	default:
	}
	p.updates <- u
}
