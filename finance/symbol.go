package finance

import "strings"

// DefaultMarketSuffix is appended to bare symbols so "RELIANCE" and
// "RELIANCE.NS" address the same position.
const DefaultMarketSuffix = ".NS"

// NormalizeSymbol canonicalizes a stock symbol: upper-case, with the
// market suffix appended when absent. Idempotent, so normalized symbols
// pass through unchanged and are safe to use as storage keys.
func NormalizeSymbol(symbol, suffix string) string {
	if suffix == "" {
		suffix = DefaultMarketSuffix
	}
	s := strings.ToUpper(strings.TrimSpace(symbol))
	suffix = strings.ToUpper(suffix)
	if !strings.HasSuffix(s, suffix) {
		s += suffix
	}
	return s
}
