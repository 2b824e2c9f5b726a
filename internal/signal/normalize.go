// Package signal extracts pump announcements (coin, exchange, minutes to
// pump) from noisy chat messages.
package signal

import (
	"regexp"
	"strings"
	"unicode"
)

// escapedEmojiRx matches emoji that reached us as escaped surrogate halves, e.g. `\ude80`.
var escapedEmojiRx = regexp.MustCompile(`\\[a-z0-9]{5}`)

// Normalize prepares raw message text for containment checks:
// escaped emoji and punctuation are dropped, spaces between single-character
// spam tokens are collapsed, the text is lower-cased and padded with one
// space on each side so " ltc " cannot match inside a longer word.
func Normalize(raw string) string {
	text := escapedEmojiRx.ReplaceAllString(raw, "")
	// lower-case before filtering: some runes lower-case into combining marks
	text = stripNonWord(strings.ToLower(text))
	text = strings.Join(strings.Fields(text), " ")
	text = collapseSingleRuneSpacing(text)
	return " " + text + " "
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// stripNonWord removes every rune that is neither whitespace nor a letter or
// digit. Underscore goes too.
func stripNonWord(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || isWordRune(r) {
			return r
		}
		return -1
	}, s)
}

// collapseSingleRuneSpacing removes a run of spaces that follows a
// one-character token unless the next token is at least two characters long.
// "p u m p" becomes "pump" while "a bitcoin" is left alone. All decisions are
// made against the input, not the partially rewritten output.
func collapseSingleRuneSpacing(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		if runes[i] != ' ' {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && runes[j] == ' ' {
			j++
		}
		if !followsSingleRuneToken(runes, i) || startsLongToken(runes, j) {
			for k := i; k < j; k++ {
				b.WriteRune(' ')
			}
		}
		i = j
	}
	return b.String()
}

func followsSingleRuneToken(runes []rune, spaceAt int) bool {
	if spaceAt == 0 || !isWordRune(runes[spaceAt-1]) {
		return false
	}
	return spaceAt == 1 || !isWordRune(runes[spaceAt-2])
}

func startsLongToken(runes []rune, at int) bool {
	return at+1 < len(runes) && isWordRune(runes[at]) && isWordRune(runes[at+1])
}
