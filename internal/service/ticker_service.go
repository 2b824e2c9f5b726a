package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pump-radar/internal/domain"
	"pump-radar/internal/market"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	tickerCacheKey = "tickers:snapshot"
	tickerCacheTTL = 24 * time.Hour
)

var (
	ErrTickersUnavailable = errors.New("ticker snapshot not available yet")
	ErrUnknownExchange    = errors.New("no listing provider for exchange")
)

// PairLister fetches the active pairs of one exchange.
type PairLister interface {
	Exchange() string
	ListActivePairs(ctx context.Context) ([]domain.MarketPair, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// TickerService owns every listing fetch. It publishes complete snapshots
// to the book and mirrors them to Redis so a restart has tickers before the
// first refresh finishes.
type TickerService struct {
	tracer  trace.Tracer
	listers []PairLister
	book    *market.Book
	redis   RedisClient
	now     func() time.Time
}

func NewTickerService(tracer trace.Tracer, book *market.Book, redisClient RedisClient, listers ...PairLister) *TickerService {
	return &TickerService{
		tracer:  tracer,
		listers: listers,
		book:    book,
		redis:   redisClient,
		now:     time.Now,
	}
}

// Refresh fetches every exchange and swaps in the new snapshot. If any
// fetch fails nothing is swapped and the previous snapshot stays current.
func (s *TickerService) Refresh(ctx context.Context) (*domain.TickerSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "ticker-service.refresh")
	defer span.End()

	exchanges := make(map[string][]string, len(s.listers))
	for _, l := range s.listers {
		pairs, err := l.ListActivePairs(ctx)
		if err != nil {
			return nil, fmt.Errorf("refresh %s tickers: %w", l.Exchange(), err)
		}
		tickers := make([]string, len(pairs))
		for i, p := range pairs {
			tickers[i] = p.Ticker
		}
		exchanges[l.Exchange()] = tickers
	}

	snap := domain.NewTickerSnapshot(s.now().UTC(), exchanges)
	s.book.SwapTickers(snap)
	span.SetAttributes(attribute.Int("tickers", snap.Len()))

	if s.redis != nil {
		if err := s.setCache(ctx, snap); err != nil {
			log.Warn().Err(err).Msg("ticker cache write failed")
		}
	}

	log.Info().Int("exchanges", len(exchanges)).Int("tickers", snap.Len()).Msg("ticker snapshot refreshed")
	return snap, nil
}

// Snapshot returns the current snapshot, falling back to the Redis copy
// before the first successful refresh.
func (s *TickerService) Snapshot(ctx context.Context) (*domain.TickerSnapshot, error) {
	if snap := s.book.Tickers(); snap != nil {
		return snap, nil
	}

	ctx, span := s.tracer.Start(ctx, "ticker-service.warm-start")
	defer span.End()

	if s.redis != nil {
		cached, err := s.getCache(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("ticker cache read failed")
		}
		if cached != nil {
			// a refresh finishing meanwhile wins over the cached copy
			return s.book.InitTickers(cached), nil
		}
	}
	return nil, ErrTickersUnavailable
}

// Pairs fetches the current pairs of one exchange straight from its
// provider, bypassing the snapshot.
func (s *TickerService) Pairs(ctx context.Context, exchange string) ([]domain.MarketPair, error) {
	ctx, span := s.tracer.Start(ctx, "ticker-service.pairs")
	defer span.End()

	for _, l := range s.listers {
		if strings.EqualFold(l.Exchange(), exchange) {
			return l.ListActivePairs(ctx)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownExchange, exchange)
}

func (s *TickerService) setCache(ctx context.Context, snap *domain.TickerSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, tickerCacheKey, data, tickerCacheTTL).Err()
}

func (s *TickerService) getCache(ctx context.Context) (*domain.TickerSnapshot, error) {
	data, err := s.redis.Get(ctx, tickerCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap domain.TickerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	// rebuild the lookup index
	return domain.NewTickerSnapshot(snap.FetchedAt, snap.Exchanges), nil
}
