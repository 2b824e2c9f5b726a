package mention

import (
	"errors"
	"strings"

	"pump-radar/internal/domain"
)

var ErrEmptyDictionary = errors.New("coin dictionary is empty")

// WeightMode selects which trust weight scales an alias hit.
type WeightMode string

const (
	// WeightCanonical scales every hit in a group by the weight of the
	// group's canonical ticker (index 0). Since that weight is always 1, alias
	// weights only matter under WeightPerAlias. This mirrors how the
	// dictionary has been scored historically; it is not known whether that
	// was intended.
	WeightCanonical WeightMode = "canonical"
	// WeightPerAlias scales each hit by the alias' own trust weight.
	WeightPerAlias WeightMode = "alias"
)

// ParseWeightMode falls back to WeightCanonical for unknown values.
func ParseWeightMode(s string) WeightMode {
	if WeightMode(strings.ToLower(strings.TrimSpace(s))) == WeightPerAlias {
		return WeightPerAlias
	}
	return WeightCanonical
}

type CoinScore struct {
	Ticker string  `json:"ticker"`
	Score  float64 `json:"score"`
}

type Selection struct {
	Ticker string      `json:"ticker"`
	Score  float64     `json:"score"`
	Scores []CoinScore `json:"scores"`
}

type Scorer struct {
	mode WeightMode
}

func NewScorer(mode WeightMode) *Scorer {
	if mode != WeightPerAlias {
		mode = WeightCanonical
	}
	return &Scorer{mode: mode}
}

func (s *Scorer) Mode() WeightMode { return s.mode }

// Score returns one entry per alias group, in dictionary order. Each alias
// contributes (non-overlapping, case-insensitive occurrences) x weight.
func (s *Scorer) Score(text string, dict *domain.CoinDictionary) []CoinScore {
	if dict == nil {
		return nil
	}
	lower := strings.ToLower(text)
	scores := make([]CoinScore, 0, len(dict.Groups))
	for _, group := range dict.Groups {
		if len(group) == 0 {
			continue
		}
		score := CoinScore{Ticker: group.Ticker()}
		for _, alias := range group {
			needle := strings.ToLower(alias.Text)
			if needle == "" {
				continue
			}
			count := strings.Count(lower, needle)
			if count == 0 {
				continue
			}
			weight := group[0].TrustWeight
			if s.mode == WeightPerAlias {
				weight = alias.TrustWeight
			}
			score.Score += float64(count) * weight
		}
		scores = append(scores, score)
	}
	return scores
}

// Select picks the highest scoring ticker. Ties go to the group that comes
// first in the dictionary. With no hits at all that is the first group.
func (s *Scorer) Select(text string, dict *domain.CoinDictionary) (Selection, error) {
	scores := s.Score(text, dict)
	if len(scores) == 0 {
		return Selection{}, ErrEmptyDictionary
	}
	best := scores[0]
	for _, sc := range scores[1:] {
		if sc.Score > best.Score {
			best = sc
		}
	}
	return Selection{Ticker: best.Ticker, Score: best.Score, Scores: scores}, nil
}
