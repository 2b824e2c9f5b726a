package signal

import "strings"

// FindExchange returns the first serviced exchange name contained in the
// normalized text, in vocabulary order.
func FindExchange(normalized string, names []string) (string, bool) {
	lower := strings.ToLower(normalized)
	for _, name := range names {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}
