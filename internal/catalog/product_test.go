package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(n int) *int {
	return &n
}

func TestProductUnmarshalJSON_Numbers(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"id":"p1","name":"Pompe","category":"Filtration","price":100,"taxRate":0.21,"promoPrice":"80.5","isOnSale":true,"stock":3}`), &p)
	require.NoError(t, err)

	require.NotNil(t, p.Price)
	assert.True(t, p.Price.Equal(dec("100")))
	require.NotNil(t, p.PromoPrice)
	assert.True(t, p.PromoPrice.Equal(dec("80.5")))
	assert.True(t, p.TaxRate.Equal(dec("0.21")))
	assert.Equal(t, 3, *p.Stock)
	assert.True(t, p.IsOnSale)
}

func TestProductUnmarshalJSON_MalformedMoney(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"id":"p1","name":"Pompe","price":"sur devis","taxRate":"n/a"}`), &p)
	require.NoError(t, err)

	assert.Nil(t, p.Price)
	assert.True(t, p.TaxRate.IsZero())
	assert.Equal(t, Unpriced{}, p.Pricing())
}

func TestProductJSONRoundTrip(t *testing.T) {
	in := Product{
		ID:       "p1",
		Name:     "Robot",
		Category: "Robots - Électriques",
		Price:    Amount(dec("499.90")),
		TaxRate:  dec("0.21"),
		Stock:    intPtr(2),
		Variants: []Variant{{ID: "v1", PriceModifier: dec("-20"), Stock: intPtr(1)}},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Product
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Price.Equal(*in.Price))
	assert.True(t, out.TaxRate.Equal(in.TaxRate))
	assert.Equal(t, in.Category, out.Category)
	require.Len(t, out.Variants, 1)
	assert.True(t, out.Variants[0].PriceModifier.Equal(dec("-20")))
}

func TestPricing(t *testing.T) {
	base := Amount(dec("100"))
	promo := Amount(dec("80"))

	assert.Equal(t, Regular{Base: dec("100")}, Product{Price: base}.Pricing())
	assert.Equal(t, Promotional{Base: dec("100"), Promo: dec("80")}, Product{Price: base, PromoPrice: promo, IsOnSale: true}.Pricing())
	assert.Equal(t, Regular{Base: dec("100")}, Product{Price: base, IsOnSale: true}.Pricing(), "on sale without promo price falls back")
	assert.Equal(t, Regular{Base: dec("100")}, Product{Price: base, PromoPrice: promo}.Pricing(), "promo price ignored when not on sale")
	assert.Equal(t, Unpriced{}, Product{IsOnSale: true, PromoPrice: promo}.Pricing())
}

func TestAvailability(t *testing.T) {
	p := Product{
		Stock:    intPtr(5),
		Variants: []Variant{{ID: "big", Stock: intPtr(0)}, {ID: "small"}},
	}

	assert.Equal(t, TrackedStock{Count: 5}, p.Availability(""))
	assert.Equal(t, TrackedStock{Count: 0}, p.Availability("big"))
	assert.Equal(t, TrackedStock{Count: 5}, p.Availability("small"), "variant without stock uses parent")
	assert.False(t, p.InStock("big"))
	assert.True(t, p.InStock(""))

	p.Dropship = true
	assert.Equal(t, Untracked{}, p.Availability("big"))
	assert.Equal(t, Untracked{}, Product{}.Availability(""))
	assert.True(t, Allows(Untracked{}, 1000))
	assert.False(t, Allows(TrackedStock{Count: 2}, 3))
}

func TestStockPool(t *testing.T) {
	p := Product{
		Stock:    intPtr(5),
		Variants: []Variant{{ID: "big", Stock: intPtr(0)}, {ID: "small"}, {ID: "medium"}},
	}

	assert.Equal(t, "big", p.StockPool("big"))
	assert.Equal(t, "", p.StockPool("small"))
	assert.Equal(t, p.StockPool("small"), p.StockPool("medium"), "siblings without stock share the parent")
	assert.Equal(t, "", p.StockPool(""))
	assert.Equal(t, "", p.StockPool("unknown"))
}

func TestClone_IsDeep(t *testing.T) {
	p := Product{
		Price:      Amount(dec("10")),
		Stock:      intPtr(1),
		Attributes: map[string]string{"Couleur": "Bleu"},
		Images:     []string{"a.jpg"},
		Variants:   []Variant{{ID: "v", Stock: intPtr(4), Attributes: map[string]string{"Taille": "M"}}},
	}
	c := p.Clone()

	*c.Price = dec("99")
	*c.Stock = 9
	c.Attributes["Couleur"] = "Rouge"
	c.Images[0] = "b.jpg"
	*c.Variants[0].Stock = 0
	c.Variants[0].Attributes["Taille"] = "L"

	assert.True(t, p.Price.Equal(dec("10")))
	assert.Equal(t, 1, *p.Stock)
	assert.Equal(t, "Bleu", p.Attributes["Couleur"])
	assert.Equal(t, "a.jpg", p.Images[0])
	assert.Equal(t, 4, *p.Variants[0].Stock)
	assert.Equal(t, "M", p.Variants[0].Attributes["Taille"])
}
