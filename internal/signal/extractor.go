package signal

import (
	"time"

	"pump-radar/internal/domain"
)

// Extractor runs the full per-message pipeline. It performs no I/O: the
// caller hands in an already fetched ticker snapshot.
type Extractor struct {
	links     *LinkExtractor
	matcher   *CoinMatcher
	exchanges []string
	now       func() time.Time
}

type ExtractorConfig struct {
	Hosts        []domain.ExchangeHost
	Exchanges    []string
	BaseCurrency string
	IgnoreWords  []string
}

func NewExtractor(cfg ExtractorConfig) *Extractor {
	exchanges := cfg.Exchanges
	if len(exchanges) == 0 {
		exchanges = domain.ServicedExchanges
	}
	return &Extractor{
		links:     NewLinkExtractor(cfg.Hosts, cfg.BaseCurrency),
		matcher:   NewCoinMatcher(cfg.IgnoreWords...),
		exchanges: exchanges,
		now:       time.Now,
	}
}

// Extract builds a PumpSignal from one message. A coin taken from an
// exchange link wins over coins mentioned in the text; when the text names
// several coins the signal carries them as Candidates and leaves Coin empty.
func (e *Extractor) Extract(msg domain.MessageContext, tickers *domain.TickerSnapshot) domain.PumpSignal {
	sig := domain.PumpSignal{
		GroupID:    msg.GroupID,
		DetectedAt: e.now().UTC(),
	}

	links, rest := ExtractLinks(msg.Text)
	if coin, exchange := e.links.FindCoin(links, tickers); coin != "" {
		sig.Coin = coin
		sig.Exchange = exchange
		sig.FromLink = true
	}

	normalized := Normalize(rest)

	if sig.Coin == "" {
		candidates := e.matcher.FindMentionedCoins(normalized, tickers)
		switch len(candidates) {
		case 0:
		case 1:
			sig.Coin = candidates[0]
		default:
			sig.Candidates = candidates
		}
	}

	if minutes, ok := ExtractMinutes(normalized); ok {
		sig.MinutesToPump = &minutes
	}

	if sig.Exchange == "" {
		if name, ok := FindExchange(normalized, e.exchanges); ok {
			sig.Exchange = name
		}
	}

	return sig
}
