package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/poolstore/internal/catalog"
)

func TestCartTotals_PerLineTaxRates(t *testing.T) {
	lines := []Line{
		{Product: catalog.Product{ID: "pump", Price: catalog.Amount(dec("100")), TaxRate: dec("0.21")}, Quantity: 2},
		{Product: catalog.Product{ID: "book", Price: catalog.Amount(dec("50")), TaxRate: dec("0.06")}, Quantity: 1},
	}

	got := CartTotals(lines)
	assertDec(t, "250", got.Net)
	assertDec(t, "45", got.Tax) // 2*100*0.21 + 50*0.06
	assertDec(t, "295", got.Gross)
}

func TestCartTotals_UsesVariantOfSnapshot(t *testing.T) {
	p := catalog.Product{
		ID:       "robot",
		Price:    catalog.Amount(dec("500")),
		TaxRate:  dec("0.21"),
		Variants: []catalog.Variant{{ID: "pro", PriceModifier: dec("100")}},
	}

	got := CartTotals([]Line{{Product: p, VariantID: "pro", Quantity: 1}})
	assertDec(t, "600", got.Net)
	assertDec(t, "126", got.Tax)

	got = CartTotals([]Line{{Product: p, VariantID: "gone", Quantity: 1}})
	assertDec(t, "500", got.Net)
}

func TestCartTotals_SkipsUnpricedAndEmptyLines(t *testing.T) {
	lines := []Line{
		{Product: catalog.Product{TaxRate: dec("0.21")}, Quantity: 3},
		{Product: catalog.Product{Price: catalog.Amount(dec("10"))}, Quantity: 0},
	}

	got := CartTotals(lines)
	assert.True(t, got.Gross.IsZero())
	assert.True(t, CartTotals(nil).Gross.IsZero())
}

func TestTotalsRound(t *testing.T) {
	lines := []Line{
		{Product: catalog.Product{Price: catalog.Amount(dec("9.99")), TaxRate: dec("0.21")}, Quantity: 3},
	}

	exact := CartTotals(lines)
	assertDec(t, "29.97", exact.Net)
	assertDec(t, "6.2937", exact.Tax)

	rounded := exact.Round(2)
	assertDec(t, "29.97", rounded.Net)
	assertDec(t, "6.29", rounded.Tax)
	assertDec(t, "36.26", rounded.Gross)
	assert.True(t, rounded.Net.Add(rounded.Tax).Equal(rounded.Gross))
}
