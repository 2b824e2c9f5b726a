package provider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"pump-radar/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const yobitBaseURL = "https://yobit.net/api/3"

// YobitProvider lists visible Yobit pairs. Yobit publishes no coin names,
// so Name repeats the ticker.
type YobitProvider struct {
	client       *http.Client
	baseURL      string
	tracer       trace.Tracer
	baseCurrency string
}

func NewYobitProvider(tracer trace.Tracer, baseCurrency string) *YobitProvider {
	return &YobitProvider{
		client:       newHTTPClient(),
		baseURL:      yobitBaseURL,
		tracer:       tracer,
		baseCurrency: strings.ToLower(baseCurrency),
	}
}

func (p *YobitProvider) Exchange() string { return "yobit" }

func (p *YobitProvider) ListActivePairs(ctx context.Context) ([]domain.MarketPair, error) {
	ctx, span := p.tracer.Start(ctx, "yobit.list-active-pairs")
	defer span.End()

	// {"server_time": 1518000000, "pairs": {"ltc_btc": {"hidden": 0, ...}, ...}}
	var raw struct {
		Pairs map[string]struct {
			Hidden int `json:"hidden"`
		} `json:"pairs"`
	}
	if err := getJSON(ctx, p.client, "yobit", p.baseURL+"/info", nil, &raw); err != nil {
		return nil, fmt.Errorf("fetch yobit pairs: %w", err)
	}

	suffix := "_" + p.baseCurrency
	tickers := make([]string, 0, len(raw.Pairs))
	for pair, info := range raw.Pairs {
		if info.Hidden != 0 || !strings.HasSuffix(pair, suffix) {
			continue
		}
		if t := strings.ToUpper(strings.TrimSuffix(pair, suffix)); t != "" {
			tickers = append(tickers, t)
		}
	}
	// map order is random
	sort.Strings(tickers)

	span.SetAttributes(attribute.Int("pairs", len(tickers)))
	return pairsFromTickers(tickers), nil
}

func pairsFromTickers(tickers []string) []domain.MarketPair {
	pairs := make([]domain.MarketPair, len(tickers))
	for i, t := range tickers {
		pairs[i] = domain.MarketPair{Ticker: t, Name: t}
	}
	return pairs
}
