package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pump-radar/internal/domain"
)

func TestFindMentionedCoins(t *testing.T) {
	m := NewCoinMatcher()
	snap := domain.NewTickerSnapshot(time.Unix(0, 0), map[string][]string{
		"yobit":   {"LTC", "PAY", "GO", "XVG"},
		"binance": {"LTC", "ARK"},
	})

	assert.Equal(t, []string{"LTC"}, m.FindMentionedCoins(Normalize("Buy LTC now"), snap))
	assert.Equal(t, []string{"ARK", "XVG"}, m.FindMentionedCoins(Normalize("xvg or ARK?"), snap))
	assert.Nil(t, m.FindMentionedCoins(Normalize("ltcusd and arkade"), snap), "partial words must not match")
	assert.Nil(t, m.FindMentionedCoins(Normalize("go pay now"), snap))
	assert.Nil(t, m.FindMentionedCoins(Normalize("LTC"), nil))
}

func TestFindMentionedCoinsNeverReturnsIgnored(t *testing.T) {
	m := NewCoinMatcher("ark")
	snap := domain.NewTickerSnapshot(time.Unix(0, 0), map[string][]string{
		"yobit": append([]string{"ARK", "LTC"}, DefaultIgnoreWords...),
	})
	text := Normalize("ark ltc " + joinWords(DefaultIgnoreWords))
	got := m.FindMentionedCoins(text, snap)
	assert.Equal(t, []string{"LTC"}, got)
	for _, ticker := range got {
		assert.False(t, m.Ignored(ticker))
	}
}

func joinWords(words []string) string {
	out := ""
	for _, w := range words {
		out += w + " "
	}
	return out
}
