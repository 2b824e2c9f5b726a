package signal

import (
	"sort"
	"strings"

	"pump-radar/internal/domain"
)

// DefaultIgnoreWords are listed tickers that are also everyday English (or
// pump-chat) words. A hit on one of them says nothing about the coin.
var DefaultIgnoreWords = []string{
	"A", "ADD", "ALL", "AMP", "ANY", "ARE", "ART", "BAT", "BAY", "BEST", "BIG",
	"BOT", "BOX", "BUY", "CALL", "CAN", "CAT", "COIN", "DAY", "DOT", "EAT",
	"EDGE", "EVEN", "FAIR", "FLASH", "FOR", "FUN", "GAME", "GET", "GO", "GOLD",
	"GOOD", "GOT", "HEAT", "HIT", "HOT", "I", "IN", "IS", "IT", "JOB", "KEY",
	"LET", "LIVE", "LOOP", "MAN", "ME", "MIN", "MOON", "NET", "NEW", "NEXT",
	"NOTE", "NOW", "OK", "ON", "ONE", "OPEN", "OUT", "PART", "PAY", "PINK",
	"PLAY", "POST", "PUMP", "PUT", "REAL", "RISE", "RUN", "SAFE", "SEE", "SELL",
	"SHIP", "SOON", "STAR", "START", "SUB", "SUN", "TIME", "TOP", "TRUE", "TRY",
	"UP", "WAVE", "WIN", "X", "YOU", "ZERO",
}

// CoinMatcher finds active tickers mentioned in normalized text.
type CoinMatcher struct {
	ignore map[string]struct{}
}

// NewCoinMatcher builds a matcher ignoring DefaultIgnoreWords plus extra.
func NewCoinMatcher(extra ...string) *CoinMatcher {
	ignore := make(map[string]struct{}, len(DefaultIgnoreWords)+len(extra))
	for _, w := range append(append([]string(nil), DefaultIgnoreWords...), extra...) {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			ignore[w] = struct{}{}
		}
	}
	return &CoinMatcher{ignore: ignore}
}

// Ignored reports whether ticker is on the ignore list.
func (m *CoinMatcher) Ignored(ticker string) bool {
	_, ok := m.ignore[strings.ToUpper(ticker)]
	return ok
}

// FindMentionedCoins returns the sorted, de-duplicated set of tickers from
// any exchange in the snapshot that appear as whole tokens in normalized.
// More than one result means the message is ambiguous; picking one is up to
// the caller.
func (m *CoinMatcher) FindMentionedCoins(normalized string, tickers *domain.TickerSnapshot) []string {
	if tickers == nil {
		return nil
	}
	padded := " " + strings.TrimSpace(strings.ToLower(normalized)) + " "
	found := make(map[string]struct{})
	for _, exchange := range tickers.ExchangeNames() {
		for _, ticker := range tickers.Exchanges[exchange] {
			if ticker == "" || m.Ignored(ticker) {
				continue
			}
			if strings.Contains(padded, " "+strings.ToLower(ticker)+" ") {
				found[strings.ToUpper(ticker)] = struct{}{}
			}
		}
	}
	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for t := range found {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
