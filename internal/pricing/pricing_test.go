package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/poolstore/internal/catalog"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestEffectiveUnitPrice_Regular(t *testing.T) {
	p := catalog.Product{Price: catalog.Amount(dec("100")), TaxRate: dec("0.21")}

	got := EffectiveUnitPrice(p, nil)
	assert.True(t, got.Known)
	assertDec(t, "100", got.Net)
	assertDec(t, "121", got.Gross)
}

func TestEffectiveUnitPrice_Promotional(t *testing.T) {
	p := catalog.Product{
		Price:      catalog.Amount(dec("100")),
		PromoPrice: catalog.Amount(dec("80")),
		IsOnSale:   true,
		TaxRate:    dec("0.21"),
	}

	got := EffectiveUnitPrice(p, nil)
	assertDec(t, "80", got.Net)
	assertDec(t, "96.8", got.Gross)
}

func TestEffectiveUnitPrice_OnSaleWithoutPromoMatchesRegular(t *testing.T) {
	onSale := catalog.Product{Price: catalog.Amount(dec("59.90")), IsOnSale: true, TaxRate: dec("0.21")}
	regular := catalog.Product{Price: catalog.Amount(dec("59.90")), TaxRate: dec("0.21")}

	a := EffectiveUnitPrice(onSale, nil)
	b := EffectiveUnitPrice(regular, nil)
	assert.True(t, a.Net.Equal(b.Net))
	assert.True(t, a.Gross.Equal(b.Gross))
}

func TestEffectiveUnitPrice_VariantModifierBeforeTax(t *testing.T) {
	p := catalog.Product{Price: catalog.Amount(dec("100")), TaxRate: dec("0.21")}
	v := catalog.Variant{ID: "xl", PriceModifier: dec("20")}

	got := EffectiveUnitPrice(p, &v)
	assertDec(t, "120", got.Net)
	assertDec(t, "145.2", got.Gross)

	v.PriceModifier = dec("-10")
	got = EffectiveUnitPrice(p, &v)
	assertDec(t, "90", got.Net)
}

func TestEffectiveUnitPrice_Unpriced(t *testing.T) {
	got := EffectiveUnitPrice(catalog.Product{TaxRate: dec("0.21")}, nil)
	assert.False(t, got.Known)
	assert.True(t, got.Net.IsZero())
	assert.True(t, got.Gross.IsZero())
}

func TestReferencePrice(t *testing.T) {
	p := catalog.Product{
		Price:      catalog.Amount(dec("100")),
		PromoPrice: catalog.Amount(dec("80")),
		IsOnSale:   true,
		TaxRate:    dec("0.21"),
		Variants:   []catalog.Variant{{ID: "xl", PriceModifier: dec("50")}},
	}

	ref, ok := ReferencePrice(p)
	assert.True(t, ok)
	assertDec(t, "121", ref)
	assert.Equal(t, int64(20), DiscountPercent(p))
}

func TestReferencePrice_NotShown(t *testing.T) {
	tests := []struct {
		name string
		p    catalog.Product
	}{
		{"not on sale", catalog.Product{Price: catalog.Amount(dec("100")), PromoPrice: catalog.Amount(dec("80"))}},
		{"no promo price", catalog.Product{Price: catalog.Amount(dec("100")), IsOnSale: true}},
		{"promo above base", catalog.Product{Price: catalog.Amount(dec("100")), PromoPrice: catalog.Amount(dec("120")), IsOnSale: true}},
		{"unpriced", catalog.Product{PromoPrice: catalog.Amount(dec("10")), IsOnSale: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ReferencePrice(tt.p)
			assert.False(t, ok)
			assert.Equal(t, int64(0), DiscountPercent(tt.p))
		})
	}
}

func TestEffectiveUnitPrice_PromoAboveBaseDoesNotPanic(t *testing.T) {
	p := catalog.Product{
		Price:      catalog.Amount(dec("100")),
		PromoPrice: catalog.Amount(dec("120")),
		IsOnSale:   true,
	}
	assert.NotPanics(t, func() {
		got := EffectiveUnitPrice(p, nil)
		assertDec(t, "120", got.Net)
	})
}
