package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/poolstore/internal/catalog"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(n int) *int {
	return &n
}

func pump() catalog.Product {
	return catalog.Product{
		ID:       "pump",
		Name:     "Pompe",
		Price:    catalog.Amount(dec("100")),
		TaxRate:  dec("0.21"),
		Stock:    intPtr(3),
		Variants: []catalog.Variant{{ID: "tri", PriceModifier: dec("50"), Stock: intPtr(1)}},
	}
}

func TestAdd_NewLineAndMerge(t *testing.T) {
	items, err := Add(nil, pump(), "", 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = Add(items, pump(), "", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	items, err = Add(items, pump(), "tri", 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Key{ProductID: "pump", VariantID: "tri"}, items[1].Key())
	assert.Equal(t, 4, Count(items))
}

func TestAdd_Errors(t *testing.T) {
	_, err := Add(nil, pump(), "", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Add(nil, pump(), "nope", 1)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = Add(nil, pump(), "", 4)
	assert.ErrorIs(t, err, ErrOutOfStock)

	items, err := Add(nil, pump(), "tri", 1)
	require.NoError(t, err)
	_, err = Add(items, pump(), "tri", 1)
	assert.ErrorIs(t, err, ErrOutOfStock, "variant stock supersedes parent")
}

// kit shares its parent's count of 3 across two variants without stock.
func kit() catalog.Product {
	return catalog.Product{
		ID:       "kit",
		Price:    catalog.Amount(dec("10")),
		Stock:    intPtr(3),
		Variants: []catalog.Variant{{ID: "a"}, {ID: "b"}, {ID: "own", Stock: intPtr(5)}},
	}
}

func TestAdd_VariantsShareParentStock(t *testing.T) {
	items, err := Add(nil, kit(), "a", 2)
	require.NoError(t, err)

	_, err = Add(items, kit(), "b", 2)
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = Add(items, kit(), "", 2)
	assert.ErrorIs(t, err, ErrOutOfStock, "parent line draws on the same count")

	items, err = Add(items, kit(), "b", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, Count(items))

	items, err = Add(items, kit(), "own", 5)
	require.NoError(t, err, "variant with its own stock is a separate pool")
	assert.Len(t, items, 3)
}

func TestSetQuantity_VariantsShareParentStock(t *testing.T) {
	items, _ := Add(nil, kit(), "a", 1)
	items, _ = Add(items, kit(), "b", 1)
	live := kit()

	items, err := SetQuantity(items, Key{ProductID: "kit", VariantID: "a"}, 2, &live)
	require.NoError(t, err)

	_, err = SetQuantity(items, Key{ProductID: "kit", VariantID: "b"}, 2, &live)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestCheckStock(t *testing.T) {
	items := []Item{
		{Product: kit(), VariantID: "a", Quantity: 2},
		{Product: kit(), VariantID: "b", Quantity: 2},
	}
	live := map[string]catalog.Product{"kit": kit()}
	lookup := func(id string) (catalog.Product, bool) {
		p, ok := live[id]
		return p, ok
	}

	err := CheckStock(items, lookup)
	assert.ErrorIs(t, err, ErrOutOfStock)

	items[1].Quantity = 1
	assert.NoError(t, CheckStock(items, lookup))

	delete(live, "kit")
	items[1].Quantity = 50
	assert.NoError(t, CheckStock(items, lookup), "deleted product is not checked")
}

func TestAdd_DropshipIgnoresStock(t *testing.T) {
	p := pump()
	p.Dropship = true
	p.Stock = intPtr(0)

	items, err := Add(nil, p, "", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, items[0].Quantity)
}

func TestAdd_SnapshotIsIndependent(t *testing.T) {
	p := pump()
	items, err := Add(nil, p, "", 1)
	require.NoError(t, err)

	*p.Price = dec("1")
	p.Name = "Changed"

	assert.True(t, items[0].Product.Price.Equal(dec("100")))
	assert.Equal(t, "Pompe", items[0].Product.Name)
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	items, err := Add(nil, pump(), "", 1)
	require.NoError(t, err)

	_, err = Add(items, pump(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	items, err := Add(nil, pump(), "", 1)
	require.NoError(t, err)
	key := items[0].Key()

	live := pump()
	items, err = SetQuantity(items, key, 3, &live)
	require.NoError(t, err)
	assert.Equal(t, 3, items[0].Quantity)

	_, err = SetQuantity(items, key, 4, &live)
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = SetQuantity(items, key, 40, nil)
	assert.NoError(t, err, "deleted product is not stock-checked")

	_, err = SetQuantity(items, Key{ProductID: "x"}, 1, &live)
	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	items, err := Add(nil, pump(), "", 2)
	require.NoError(t, err)

	items, err = SetQuantity(items, items[0].Key(), 0, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemove(t *testing.T) {
	items, _ := Add(nil, pump(), "", 1)
	items, _ = Add(items, pump(), "tri", 1)

	items = Remove(items, Key{ProductID: "pump"})
	require.Len(t, items, 1)
	assert.Equal(t, "tri", items[0].VariantID)

	assert.Len(t, Remove(items, Key{ProductID: "missing"}), 1)
}

func TestTotals_UsesSnapshotAndVariant(t *testing.T) {
	items, _ := Add(nil, pump(), "", 2)
	items, _ = Add(items, pump(), "tri", 1)

	got := Totals(items)
	assert.True(t, got.Net.Equal(dec("350")))
	assert.True(t, got.Tax.Equal(dec("73.5")))
	assert.True(t, got.Gross.Equal(dec("423.5")))
	assert.True(t, items[1].Unit().Gross.Equal(dec("181.5")))
}

func TestStockLinesAndSnapshot(t *testing.T) {
	items, _ := Add(nil, pump(), "tri", 1)

	lines := StockLines(items)
	assert.Equal(t, []catalog.StockLine{{ProductID: "pump", VariantID: "tri", Quantity: 1}}, lines)

	snap := Snapshot(items)
	*snap[0].Product.Price = dec("0")
	assert.True(t, items[0].Product.Price.Equal(dec("100")))
}
