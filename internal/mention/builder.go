// Package mention builds trust-weighted coin alias dictionaries and scores
// free text against them.
package mention

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"pump-radar/internal/domain"
)

const (
	// CoinSuffix marks names like "Litecoin"; such names are never ordinary words.
	CoinSuffix = "coin"
	// WordValueDenominator turns a definition count into a penalty.
	WordValueDenominator = 40.0
	// DefaultMaxCoins bounds how many listed pairs one build evaluates.
	DefaultMaxCoins = 5
)

// DefinitionCounter looks up how many dictionary definitions a word has.
type DefinitionCounter interface {
	CountDefinitions(ctx context.Context, word string) (int, error)
}

type BuilderConfig struct {
	// MaxCoins limits the build to a prefix of the listed pairs.
	MaxCoins int
	// ClampWeights keeps trust weights within [0, 1]. Off by default, so
	// very common words end up with negative weights.
	ClampWeights bool
}

// Builder derives alias groups for listed coins.
type Builder struct {
	counter DefinitionCounter
	cfg     BuilderConfig
	now     func() time.Time
}

func NewBuilder(counter DefinitionCounter, cfg BuilderConfig) *Builder {
	if cfg.MaxCoins <= 0 {
		cfg.MaxCoins = DefaultMaxCoins
	}
	return &Builder{counter: counter, cfg: cfg, now: time.Now}
}

// Build evaluates the first MaxCoins pairs and returns a new dictionary.
// Lookup failures abort the build.
func (b *Builder) Build(ctx context.Context, pairs []domain.MarketPair) (*domain.CoinDictionary, error) {
	if len(pairs) > b.cfg.MaxCoins {
		pairs = pairs[:b.cfg.MaxCoins]
	}

	dict := &domain.CoinDictionary{
		BuiltAt: b.now().UTC(),
		Groups:  make([]domain.CoinAliasGroup, 0, len(pairs)),
	}
	for _, pair := range pairs {
		group := make(domain.CoinAliasGroup, 0, 4)
		for i, alias := range Aliases(pair) {
			weight := 1.0
			if i > 0 && !hasCoinSuffix(alias) {
				count, err := b.counter.CountDefinitions(ctx, alias)
				if err != nil {
					return nil, fmt.Errorf("count definitions for %q: %w", alias, err)
				}
				weight = TrustWeight(count, b.cfg.ClampWeights)
			}
			group = append(group, domain.AliasEntry{Text: alias, TrustWeight: weight})
		}
		if len(group) > 0 {
			dict.Groups = append(dict.Groups, group)
		}
	}
	return dict, nil
}

// TrustWeight is 1 - count/40, optionally clamped to [0, 1].
func TrustWeight(definitionCount int, clamp bool) float64 {
	w := 1 - float64(definitionCount)/WordValueDenominator
	if clamp {
		w = min(max(w, 0), 1)
	}
	return w
}

// Aliases lists the textual variants of a pair: the ticker, the name, the
// capitalized name when it differs, and the capitalized name without a
// trailing "coin". The name is dropped when it equals the ticker. Empty
// aliases are skipped since they would match everywhere.
func Aliases(pair domain.MarketPair) []string {
	ticker := strings.TrimSpace(pair.Ticker)
	name := strings.TrimSpace(pair.Name)
	if ticker == "" {
		return nil
	}

	aliases := []string{ticker, name}
	if c := capitalize(name); name != c {
		aliases = append(aliases, c)
	}
	if hasCoinSuffix(name) {
		lower := strings.ToLower(name)
		stem := lower[:len(lower)-len(CoinSuffix)]
		aliases = append(aliases, capitalize(stem))
	}
	if ticker == name {
		aliases = append(aliases[:1], aliases[2:]...)
	}

	out := aliases[:0]
	for _, a := range aliases {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func hasCoinSuffix(s string) bool {
	return strings.HasSuffix(strings.ToLower(s), CoinSuffix)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
