package signal

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"pump-radar/internal/domain"
)

var linkRx = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.\-]*://\S+`)

// pairParams are query keys that carry the traded pair, e.g. ?market=XBY_BTC.
var pairParams = map[string]bool{"market": true, "marketname": true, "symbol": true, "pair": true, "currencypair": true}

// ExtractLinks returns every URL found in text and the text with those URLs
// replaced by a single space.
func ExtractLinks(text string) ([]string, string) {
	links := linkRx.FindAllString(text, -1)
	if len(links) == 0 {
		return nil, text
	}
	return links, linkRx.ReplaceAllString(text, " ")
}

// LinkExtractor recognises exchange trade links and pulls the traded ticker
// out of their path.
type LinkExtractor struct {
	hosts        []domain.ExchangeHost
	baseMarkers  []string
	minTickerLen int
}

func NewLinkExtractor(hosts []domain.ExchangeHost, baseCurrency string) *LinkExtractor {
	if len(hosts) == 0 {
		hosts = domain.DefaultExchangeHosts
	}
	base := strings.ToUpper(strings.TrimSpace(baseCurrency))
	if base == "" {
		base = "BTC"
	}
	return &LinkExtractor{
		hosts:        hosts,
		baseMarkers:  []string{base},
		minTickerLen: 2,
	}
}

// FindCoin scans links in order and stops at the first one whose host belongs
// to a serviced exchange. It returns the ticker and the exchange host
// fragment (e.g. "yobit.") only when the ticker is active on that exchange;
// otherwise both are empty.
func (e *LinkExtractor) FindCoin(links []string, tickers *domain.TickerSnapshot) (coin, exchange string) {
	for _, link := range links {
		host, rest, ok := splitHost(link)
		if !ok {
			continue
		}
		ex, ok := e.matchHost(host)
		if !ok {
			continue
		}
		ticker := e.tickerFromPath(rest)
		if ticker != "" && tickers.Contains(ex.Name, ticker) {
			return ticker, ex.HostFragment
		}
		return "", ""
	}
	return "", ""
}

func (e *LinkExtractor) matchHost(host string) (domain.ExchangeHost, bool) {
	host = strings.ToLower(host)
	for _, h := range e.hosts {
		if strings.Contains(host, h.HostFragment) {
			return h, true
		}
	}
	return domain.ExchangeHost{}, false
}

// splitHost returns the host of link and everything that follows it.
func splitHost(link string) (host, rest string, ok bool) {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", "", false
	}
	idx := strings.Index(link, u.Host)
	if idx < 0 {
		return "", "", false
	}
	return u.Host, link[idx+len(u.Host):], true
}

// tickerFromPath applies the boundary rules to the part of a link after the
// host: drop the fragment, keep only a pair-carrying query value or else the
// path, drop a "_BASE" pair suffix, drop a trailing "/BASE" leg, then take
// the trailing alphanumeric run.
func (e *LinkExtractor) tickerFromPath(rest string) string {
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if path, query, ok := strings.Cut(rest, "?"); ok {
		rest = path
		if pair := pairFromQuery(query); pair != "" {
			rest = "/" + pair
		}
	}
	rest = strings.TrimRight(rest, ".,;:!?)]'\"")
	if i := strings.LastIndexByte(rest, '_'); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimRight(rest, "/")
	for _, base := range e.baseMarkers {
		if i := strings.LastIndexAny(rest, "/-"); i >= 0 && strings.EqualFold(rest[i+1:], base) {
			rest = strings.TrimRight(rest[:i], "/-")
			break
		}
	}

	end := len(rest)
	start := end
	for start > 0 && isASCIIAlnum(rest[start-1]) {
		start--
	}
	if end-start < e.minTickerLen {
		return ""
	}
	return strings.ToUpper(rest[start:end])
}

func pairFromQuery(query string) string {
	// referral and tracking params are ignored; a malformed query still
	// yields whatever parsed
	values, _ := url.ParseQuery(query)
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if vals := values[key]; pairParams[strings.ToLower(key)] && vals[0] != "" {
			return vals[0]
		}
	}
	return ""
}

func isASCIIAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
