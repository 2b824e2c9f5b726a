package job

import (
	"context"
	"time"

	"pump-radar/internal/domain"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const dictionaryStagger = 30 * time.Second

type TickerRefresher interface {
	Refresh(ctx context.Context) (*domain.TickerSnapshot, error)
}

type DictionaryRebuilder interface {
	Rebuild(ctx context.Context) (*domain.CoinDictionary, error)
}

// JobObserver is told about every poll run.
type JobObserver interface {
	ObserveJob(job string, took time.Duration, err error)
}

// MarketPoller keeps the ticker snapshot fresh and periodically rebuilds
// the coin dictionary.
type MarketPoller struct {
	tracer          trace.Tracer
	tickers         TickerRefresher
	dictionary      DictionaryRebuilder
	tickerInterval  time.Duration
	rebuildInterval time.Duration
	stagger         time.Duration
	observer        JobObserver
}

// NewMarketPoller takes intervals in seconds and minutes. A nil dictionary
// or a non-positive rebuild interval disables rebuilds.
func NewMarketPoller(tracer trace.Tracer, tickers TickerRefresher, dictionary DictionaryRebuilder, tickerPollSecs, rebuildMins int) *MarketPoller {
	return &MarketPoller{
		tracer:          tracer,
		tickers:         tickers,
		dictionary:      dictionary,
		tickerInterval:  time.Duration(tickerPollSecs) * time.Second,
		rebuildInterval: time.Duration(rebuildMins) * time.Minute,
		stagger:         dictionaryStagger,
	}
}

// Observe reports every later run to o.
func (p *MarketPoller) Observe(o JobObserver) *MarketPoller {
	p.observer = o
	return p
}

// Start launches the polling goroutines. Blocks until ctx is cancelled.
func (p *MarketPoller) Start(ctx context.Context) {
	log.Info().
		Dur("ticker_interval", p.tickerInterval).
		Dur("rebuild_interval", p.rebuildInterval).
		Msg("market poller starting")

	go p.pollLoop(ctx, "tickers", 0, p.tickerInterval, func(ctx context.Context) error {
		_, err := p.tickers.Refresh(ctx)
		return err
	})

	if p.dictionary != nil && p.rebuildInterval > 0 {
		// give the first ticker refresh a head start
		go p.pollLoop(ctx, "dictionary", p.stagger, p.rebuildInterval, func(ctx context.Context) error {
			_, err := p.dictionary.Rebuild(ctx)
			return err
		})
	}

	<-ctx.Done()
	log.Info().Msg("market poller stopped")
}

func (p *MarketPoller) pollLoop(ctx context.Context, name string, delay, interval time.Duration, fn func(context.Context) error) {
	if delay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}

	p.runOnce(ctx, name, fn)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runOnce(ctx, name, fn)
		}
	}
}

func (p *MarketPoller) runOnce(ctx context.Context, name string, fn func(context.Context) error) {
	ctx, span := p.tracer.Start(ctx, "market-poller."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if err != nil {
		log.Error().Err(err).Str("poller", name).Msg("poll failed")
	}
	if p.observer != nil {
		p.observer.ObserveJob(name, time.Since(start), err)
	}
}
