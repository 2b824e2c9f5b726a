package service

import (
	"context"
	"fmt"

	"pump-radar/internal/domain"
	"pump-radar/internal/market"
	"pump-radar/internal/mention"
	"pump-radar/internal/repository"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrNoDictionary = repository.ErrNoDictionary

// PairSource fetches fresh pairs for one exchange.
type PairSource interface {
	Pairs(ctx context.Context, exchange string) ([]domain.MarketPair, error)
}

type DictionaryStore interface {
	Insert(ctx context.Context, dict *domain.CoinDictionary) error
	Latest(ctx context.Context) (*domain.CoinDictionary, error)
}

type DictionaryService struct {
	tracer   trace.Tracer
	pairs    PairSource
	builder  *mention.Builder
	scorer   *mention.Scorer
	store    DictionaryStore
	book     *market.Book
	exchange string
}

func NewDictionaryService(
	tracer trace.Tracer,
	pairs PairSource,
	builder *mention.Builder,
	scorer *mention.Scorer,
	store DictionaryStore,
	book *market.Book,
	exchange string,
) *DictionaryService {
	return &DictionaryService{
		tracer:   tracer,
		pairs:    pairs,
		builder:  builder,
		scorer:   scorer,
		store:    store,
		book:     book,
		exchange: exchange,
	}
}

// Rebuild lists the configured exchange, builds a new dictionary and
// persists it. The published dictionary only changes after the insert
// succeeds.
func (s *DictionaryService) Rebuild(ctx context.Context) (*domain.CoinDictionary, error) {
	ctx, span := s.tracer.Start(ctx, "dictionary-service.rebuild")
	defer span.End()
	span.SetAttributes(attribute.String("exchange", s.exchange))

	pairs, err := s.pairs.Pairs(ctx, s.exchange)
	if err != nil {
		return nil, fmt.Errorf("list %s pairs: %w", s.exchange, err)
	}

	dict, err := s.builder.Build(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("build dictionary: %w", err)
	}
	if len(dict.Groups) == 0 {
		return nil, fmt.Errorf("build dictionary from %d %s pairs: %w", len(pairs), s.exchange, mention.ErrEmptyDictionary)
	}

	if err := s.store.Insert(ctx, dict); err != nil {
		return nil, err
	}
	s.book.SwapDictionary(dict)

	log.Info().
		Int64("dictionary_id", dict.ID).
		Strs("tickers", dict.Tickers()).
		Str("exchange", s.exchange).
		Msg("coin dictionary rebuilt")
	return dict, nil
}

// Latest returns the published dictionary, loading the newest stored one
// on first use.
func (s *DictionaryService) Latest(ctx context.Context) (*domain.CoinDictionary, error) {
	if dict := s.book.Dictionary(); dict != nil {
		return dict, nil
	}

	ctx, span := s.tracer.Start(ctx, "dictionary-service.load-latest")
	defer span.End()

	dict, err := s.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	// a rebuild published meanwhile wins over the stored copy
	return s.book.InitDictionary(dict), nil
}

// Classify picks the coin text most likely refers to.
func (s *DictionaryService) Classify(ctx context.Context, text string) (mention.Selection, error) {
	ctx, span := s.tracer.Start(ctx, "dictionary-service.classify")
	defer span.End()

	dict, err := s.Latest(ctx)
	if err != nil {
		return mention.Selection{}, err
	}
	sel, err := s.scorer.Select(text, dict)
	if err != nil {
		return mention.Selection{}, fmt.Errorf("dictionary %d: %w", dict.ID, err)
	}
	span.SetAttributes(attribute.String("ticker", sel.Ticker), attribute.Float64("score", sel.Score))
	return sel, nil
}
