package portfolio

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fintrack/finance"
	"github.com/rustyeddy/fintrack/quote"
)

// Holding is one valuation row. PriceKnown is false when the oracle
// could not supply a price; Current and PL are zero-valued then.
type Holding struct {
	finance.Position
	LivePrice  decimal.Decimal
	PriceKnown bool
	Invested   decimal.Decimal
	Current    decimal.Decimal
	PL         decimal.Decimal
	PLPercent  decimal.Decimal
}

// Valuation is the portfolio report with aggregate totals.
type Valuation struct {
	Holdings      []Holding
	TotalInvested decimal.Decimal
	TotalCurrent  decimal.Decimal
	TotalPL       decimal.Decimal
	TotalPLPct    decimal.Decimal
}

// Valuation prices every position against src. A failed lookup degrades
// that row to zero current value; the report itself never fails on a
// bad symbol.
func (e *Engine) Valuation(ctx context.Context, accountID int64, src quote.Source) (Valuation, error) {
	positions, err := e.store.Positions(ctx, accountID)
	if err != nil {
		return Valuation{}, err
	}

	var v Valuation
	for _, pos := range positions {
		h := Holding{
			Position: pos,
			Invested: pos.Invested(),
		}

		price, err := src.Lookup(ctx, pos.Symbol)
		if err == nil {
			h.LivePrice = price
			h.PriceKnown = true
			h.Current = price.Mul(decimal.NewFromInt(pos.Quantity))
		}

		h.PL = h.Current.Sub(h.Invested)
		if h.Invested.IsPositive() {
			h.PLPercent = h.PL.Div(h.Invested).Mul(decimal.NewFromInt(100)).Round(2)
		}

		v.TotalInvested = v.TotalInvested.Add(h.Invested)
		v.TotalCurrent = v.TotalCurrent.Add(h.Current)
		v.Holdings = append(v.Holdings, h)
	}

	v.TotalPL = v.TotalCurrent.Sub(v.TotalInvested)
	if v.TotalInvested.IsPositive() {
		v.TotalPLPct = v.TotalPL.Div(v.TotalInvested).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return v, nil
}
