package catalog

import "github.com/shopspring/decimal"

// Pricing is the tagged pricing state of a product:
// Regular, Promotional or Unpriced.
type Pricing interface {
	isPricing()
}

// Regular pricing charges the base price.
type Regular struct {
	Base decimal.Decimal
}

// Promotional pricing charges Promo instead of Base.
type Promotional struct {
	Base  decimal.Decimal
	Promo decimal.Decimal
}

// Unpriced marks a product whose base price is missing or malformed.
type Unpriced struct{}

func (Regular) isPricing()     {}
func (Promotional) isPricing() {}
func (Unpriced) isPricing()    {}

// Pricing classifies p. An on-sale product without a promotional price
// is Regular.
func (p Product) Pricing() Pricing {
	if p.Price == nil {
		return Unpriced{}
	}
	if p.IsOnSale && p.PromoPrice != nil {
		return Promotional{Base: *p.Price, Promo: *p.PromoPrice}
	}
	return Regular{Base: *p.Price}
}
