package domain

import (
	"sort"
	"strings"
	"time"
)

// MarketPair is an active trading pair against the base currency. Name is the
// human readable coin name when the exchange publishes one, else the ticker.
type MarketPair struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// ExchangeHost ties an exchange name to the host fragment that identifies
// its trade links.
type ExchangeHost struct {
	Name         string
	HostFragment string
}

// DefaultExchangeHosts are the exchanges whose trade links are understood.
var DefaultExchangeHosts = []ExchangeHost{
	{Name: "yobit", HostFragment: "yobit."},
	{Name: "coinexchange", HostFragment: "coinexchange."},
	{Name: "cryptopia", HostFragment: "cryptopia."},
	{Name: "binance", HostFragment: "binance."},
	{Name: "bittrex", HostFragment: "bittrex."},
}

// ServicedExchanges is the vocabulary searched for in message text, in
// priority order.
var ServicedExchanges = []string{"yobit", "cryptopia", "binance", "bittrex", "coinexchange"}

// TickerSnapshot holds the active tickers of every exchange at one point in
// time. It is never mutated after construction.
type TickerSnapshot struct {
	FetchedAt time.Time           `json:"fetched_at"`
	Exchanges map[string][]string `json:"exchanges"`

	index map[string]map[string]struct{}
}

// NewTickerSnapshot copies and upper-cases the given ticker lists.
func NewTickerSnapshot(fetchedAt time.Time, exchanges map[string][]string) *TickerSnapshot {
	s := &TickerSnapshot{
		FetchedAt: fetchedAt,
		Exchanges: make(map[string][]string, len(exchanges)),
	}
	for name, tickers := range exchanges {
		cp := make([]string, 0, len(tickers))
		for _, t := range tickers {
			t = strings.ToUpper(strings.TrimSpace(t))
			if t != "" {
				cp = append(cp, t)
			}
		}
		s.Exchanges[strings.ToLower(name)] = cp
	}
	s.buildIndex()
	return s
}

func (s *TickerSnapshot) buildIndex() {
	s.index = make(map[string]map[string]struct{}, len(s.Exchanges))
	for name, tickers := range s.Exchanges {
		set := make(map[string]struct{}, len(tickers))
		for _, t := range tickers {
			set[t] = struct{}{}
		}
		s.index[name] = set
	}
}

// Contains reports whether ticker is active on the named exchange.
func (s *TickerSnapshot) Contains(exchange, ticker string) bool {
	if s == nil {
		return false
	}
	exchange = strings.ToLower(exchange)
	ticker = strings.ToUpper(ticker)
	if s.index == nil {
		// decoded from JSON, no index
		for _, t := range s.Exchanges[exchange] {
			if t == ticker {
				return true
			}
		}
		return false
	}
	set, ok := s.index[exchange]
	if !ok {
		return false
	}
	_, ok = set[ticker]
	return ok
}

// ExchangeNames returns the exchanges in the snapshot, sorted.
func (s *TickerSnapshot) ExchangeNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Exchanges))
	for name := range s.Exchanges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len is the number of tickers across all exchanges, duplicates included.
func (s *TickerSnapshot) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, tickers := range s.Exchanges {
		n += len(tickers)
	}
	return n
}
