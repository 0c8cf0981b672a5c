// Package pricing computes unit prices, display reference prices and
// cart totals.
//
// Unit prices are derived from the tagged catalog.Pricing of a product.
// Totals are computed per line with each line's own tax rate; there is no
// global rate. Functions here never fail: an unpriced product has a zero
// UnitPrice with Known set to false.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/poolstore/internal/catalog"
)

var one = decimal.NewFromInt(1)

// UnitPrice is the price of a single unit before and after tax.
type UnitPrice struct {
	Net   decimal.Decimal
	Gross decimal.Decimal
	Known bool // false when the product carries no usable base price
}

// Base returns the pre-tax price charged for p before variant modifiers:
// the promotional price when Promotional, the base price when Regular.
func Base(p catalog.Product) (decimal.Decimal, bool) {
	switch pr := p.Pricing().(type) {
	case catalog.Promotional:
		return pr.Promo, true
	case catalog.Regular:
		return pr.Base, true
	default:
		return decimal.Zero, false
	}
}

// EffectiveUnitPrice returns the unit price of p, adding the variant's
// price modifier before tax when a variant is given.
func EffectiveUnitPrice(p catalog.Product, v *catalog.Variant) UnitPrice {
	net, ok := Base(p)
	if !ok {
		return UnitPrice{Net: decimal.Zero, Gross: decimal.Zero}
	}
	if v != nil {
		net = net.Add(v.PriceModifier)
	}
	return UnitPrice{
		Net:   net,
		Gross: Gross(net, p.TaxRate),
		Known: true,
	}
}

// Gross applies rate to net.
func Gross(net, rate decimal.Decimal) decimal.Decimal {
	return net.Mul(one.Add(rate))
}

// ReferencePrice is the struck-through price shown next to a discounted
// product: the non-discounted base price with tax, ignoring any variant.
// ok is false unless promotional pricing applies and actually lowers the price.
func ReferencePrice(p catalog.Product) (decimal.Decimal, bool) {
	pr, isPromo := p.Pricing().(catalog.Promotional)
	if !isPromo || !pr.Promo.LessThan(pr.Base) {
		return decimal.Zero, false
	}
	return Gross(pr.Base, p.TaxRate), true
}

// DiscountPercent returns the rounded percentage saved by a promotion,
// or 0 when no discount is displayed.
func DiscountPercent(p catalog.Product) int64 {
	pr, isPromo := p.Pricing().(catalog.Promotional)
	if !isPromo || !pr.Promo.LessThan(pr.Base) || !pr.Base.IsPositive() {
		return 0
	}
	saved := pr.Base.Sub(pr.Promo).Div(pr.Base).Mul(decimal.NewFromInt(100))
	return saved.Round(0).IntPart()
}
