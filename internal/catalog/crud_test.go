package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert(t *testing.T) {
	in := fixtureProducts()

	out := Upsert(in, Product{ID: "3", Name: "Filtre verre"})
	require.Len(t, out, 5)
	assert.Equal(t, "Filtre verre", out[2].Name)
	assert.Equal(t, "Filtre sable", in[2].Name)

	out = Upsert(in, Product{ID: "9", Name: "Bâche"})
	require.Len(t, out, 6)
	assert.Equal(t, "9", out[5].ID)
}

func TestRemove(t *testing.T) {
	out, err := Remove(fixtureProducts(), "2")
	require.NoError(t, err)
	assert.Len(t, out, 4)

	_, ok := Find(out, "2")
	assert.False(t, ok)

	_, err = Remove(out, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeStock(t *testing.T) {
	in := []Product{
		{ID: "a", Stock: intPtr(5)},
		{ID: "b", Stock: intPtr(1), Variants: []Variant{{ID: "v", Stock: intPtr(3)}}},
		{ID: "c", Stock: intPtr(2), Dropship: true},
		{ID: "d"},
	}

	out := ConsumeStock(in, []StockLine{
		{ProductID: "a", Quantity: 7},
		{ProductID: "b", VariantID: "v", Quantity: 2},
		{ProductID: "c", Quantity: 1},
		{ProductID: "d", Quantity: 1},
		{ProductID: "missing", Quantity: 1},
	})

	assert.Equal(t, 0, *out[0].Stock, "never below zero")
	assert.Equal(t, 1, *out[1].Stock, "variant stock consumed instead of parent")
	assert.Equal(t, 1, *out[1].Variants[0].Stock)
	assert.Equal(t, 2, *out[2].Stock, "drop-shipped untouched")
	assert.Nil(t, out[3].Stock)

	assert.Equal(t, 5, *in[0].Stock)
	assert.Equal(t, 3, *in[1].Variants[0].Stock)
}
