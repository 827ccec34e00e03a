// Package quote supplies live market prices. Lookups may fail; callers
// treat ErrUnavailable as a degraded row, never a fatal condition.
package quote

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnavailable means no price could be supplied for the symbol.
var ErrUnavailable = errors.New("price unavailable")

// Source looks up the live price of a normalized symbol.
type Source interface {
	Lookup(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Static is a fixed map of prices, used for manual price entry and in
// tests. Symbols not in the map report ErrUnavailable.
type Static map[string]decimal.Decimal

func (s Static) Lookup(_ context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := s[symbol]
	if !ok {
		return decimal.Zero, ErrUnavailable
	}
	return price, nil
}
