package domain

import "time"

// AliasEntry is one textual variant of a coin together with how much a hit
// on it can be trusted.
type AliasEntry struct {
	Text        string  `json:"text"`
	TrustWeight float64 `json:"trust_weight"`
}

// CoinAliasGroup lists the aliases of one coin. Index 0 is the canonical
// ticker and always carries weight 1.
type CoinAliasGroup []AliasEntry

// Ticker returns the canonical ticker or "" for an empty group.
func (g CoinAliasGroup) Ticker() string {
	if len(g) == 0 {
		return ""
	}
	return g[0].Text
}

// CoinDictionary is an immutable snapshot produced by one dictionary build.
type CoinDictionary struct {
	ID      int64            `json:"id,omitempty"`
	BuiltAt time.Time        `json:"built_at"`
	Groups  []CoinAliasGroup `json:"groups"`
}

// Tickers returns the canonical tickers in dictionary order.
func (d *CoinDictionary) Tickers() []string {
	out := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		if t := g.Ticker(); t != "" {
			out = append(out, t)
		}
	}
	return out
}
