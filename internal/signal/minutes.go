package signal

import (
	"regexp"
	"strconv"
	"strings"
)

// pumpMinutesRx matches "<digits><spaces or quotes>min" and the Russian "минут".
var pumpMinutesRx = regexp.MustCompile(`\d+[" ]*(?:min|минут)`)

const maxCountdownMinutes = 200

// ExtractMinutes reads the minutes left until a pump from normalized text.
// A message made only of digits in (0, 200) is a countdown tick and is
// returned as is; otherwise the first "<N> min" phrase wins.
func ExtractMinutes(normalized string) (int, bool) {
	trimmed := strings.TrimSpace(normalized)
	if n, err := strconv.Atoi(trimmed); err == nil && isDigits(trimmed) {
		if n > 0 && n < maxCountdownMinutes {
			return n, true
		}
	}

	match := pumpMinutesRx.FindString(normalized)
	if match == "" {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, match)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
