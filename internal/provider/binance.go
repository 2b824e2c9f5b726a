package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"pump-radar/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const binanceBaseURL = "https://api.binance.com/api/v3"

// BinanceProvider lists Binance spot symbols in TRADING status.
type BinanceProvider struct {
	client       *http.Client
	baseURL      string
	tracer       trace.Tracer
	baseCurrency string
}

func NewBinanceProvider(tracer trace.Tracer, baseCurrency string) *BinanceProvider {
	return &BinanceProvider{
		client:       newHTTPClient(),
		baseURL:      binanceBaseURL,
		tracer:       tracer,
		baseCurrency: strings.ToUpper(baseCurrency),
	}
}

func (p *BinanceProvider) Exchange() string { return "binance" }

func (p *BinanceProvider) ListActivePairs(ctx context.Context) ([]domain.MarketPair, error) {
	ctx, span := p.tracer.Start(ctx, "binance.list-active-pairs")
	defer span.End()

	var raw struct {
		Symbols []struct {
			Symbol     string `json:"symbol"`
			Status     string `json:"status"`
			BaseAsset  string `json:"baseAsset"`
			QuoteAsset string `json:"quoteAsset"`
		} `json:"symbols"`
	}
	if err := getJSON(ctx, p.client, "binance", p.baseURL+"/exchangeInfo", nil, &raw); err != nil {
		return nil, fmt.Errorf("fetch binance exchange info: %w", err)
	}

	tickers := make([]string, 0, len(raw.Symbols))
	for _, s := range raw.Symbols {
		if s.Status != "TRADING" || !strings.EqualFold(s.QuoteAsset, p.baseCurrency) {
			continue
		}
		if t := strings.ToUpper(strings.TrimSpace(s.BaseAsset)); t != "" {
			tickers = append(tickers, t)
		}
	}
	span.SetAttributes(attribute.Int("pairs", len(tickers)))
	return pairsFromTickers(tickers), nil
}
