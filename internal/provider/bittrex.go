package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pump-radar/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const bittrexBaseURL = "https://bittrex.com/api/v1.1/public"

// BittrexProvider lists active Bittrex markets. It is the only lister that
// publishes human readable coin names, so it feeds dictionary builds.
type BittrexProvider struct {
	client       *http.Client
	baseURL      string
	tracer       trace.Tracer
	baseCurrency string
}

func NewBittrexProvider(tracer trace.Tracer, baseCurrency string) *BittrexProvider {
	return &BittrexProvider{
		client:       newHTTPClient(),
		baseURL:      bittrexBaseURL,
		tracer:       tracer,
		baseCurrency: strings.ToUpper(baseCurrency),
	}
}

func (p *BittrexProvider) Exchange() string { return "bittrex" }

type bittrexMarket struct {
	MarketCurrency     string `json:"MarketCurrency"`
	BaseCurrency       string `json:"BaseCurrency"`
	MarketCurrencyLong string `json:"MarketCurrencyLong"`
	MarketName         string `json:"MarketName"`
	IsActive           bool   `json:"IsActive"`
}

// ListActivePairs returns active markets quoted in the base currency, in
// the order Bittrex lists them.
func (p *BittrexProvider) ListActivePairs(ctx context.Context) ([]domain.MarketPair, error) {
	ctx, span := p.tracer.Start(ctx, "bittrex.list-active-pairs")
	defer span.End()

	var raw struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Result  []bittrexMarket `json:"result"`
	}
	if err := getJSON(ctx, p.client, "bittrex", p.baseURL+"/getmarkets", nil, &raw); err != nil {
		return nil, fmt.Errorf("fetch bittrex markets: %w", err)
	}
	if !raw.Success {
		return nil, fmt.Errorf("fetch bittrex markets: %w", errors.New(raw.Message))
	}

	pairs := make([]domain.MarketPair, 0, len(raw.Result))
	for _, m := range raw.Result {
		if !m.IsActive || !strings.EqualFold(m.BaseCurrency, p.baseCurrency) {
			continue
		}
		ticker := strings.ToUpper(strings.TrimSpace(m.MarketCurrency))
		if ticker == "" {
			continue
		}
		name := strings.TrimSpace(m.MarketCurrencyLong)
		if name == "" {
			name = ticker
		}
		pairs = append(pairs, domain.MarketPair{Ticker: ticker, Name: name})
	}
	span.SetAttributes(attribute.Int("pairs", len(pairs)))
	return pairs, nil
}
