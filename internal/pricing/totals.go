package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/poolstore/internal/catalog"
)

// Line is one priced quantity: a product snapshot, an optional variant
// of that snapshot, and a quantity.
type Line struct {
	Product   catalog.Product
	VariantID string
	Quantity  int
}

// Totals aggregates a set of lines.
type Totals struct {
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Gross decimal.Decimal `json:"gross"`
}

// LineUnitPrice prices one line using only the line's own snapshot.
func LineUnitPrice(l Line) UnitPrice {
	if v, ok := l.Product.Variant(l.VariantID); ok {
		return EffectiveUnitPrice(l.Product, &v)
	}
	return EffectiveUnitPrice(l.Product, nil)
}

// CartTotals sums net and tax over lines, each taxed at its own rate.
// Lines with a non-positive quantity or no known price contribute nothing.
func CartTotals(lines []Line) Totals {
	net := decimal.Zero
	tax := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		unit := LineUnitPrice(l)
		if !unit.Known {
			continue
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		net = net.Add(unit.Net.Mul(qty))
		tax = tax.Add(unit.Net.Mul(l.Product.TaxRate).Mul(qty))
	}
	return Totals{Net: net, Tax: tax, Gross: net.Add(tax)}
}

// Round rounds net and tax half-up to places and recomputes gross as
// their sum, so the displayed parts add up to the displayed total.
func (t Totals) Round(places int32) Totals {
	net := t.Net.Round(places)
	tax := t.Tax.Round(places)
	return Totals{Net: net, Tax: tax, Gross: net.Add(tax)}
}
