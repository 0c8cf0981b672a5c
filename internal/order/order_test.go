package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/poolstore/internal/cart"
	"github.com/roach88/poolstore/internal/catalog"
)

var now = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func filledCart(t *testing.T) ([]cart.Item, catalog.Product) {
	t.Helper()
	p := catalog.Product{ID: "pump", Name: "Pompe", Price: catalog.Amount(dec("100")), TaxRate: dec("0.21")}
	book := catalog.Product{ID: "guide", Name: "Guide", Price: catalog.Amount(dec("20")), TaxRate: dec("0.06")}

	items, err := cart.Add(nil, p, "", 2)
	require.NoError(t, err)
	items, err = cart.Add(items, book, "", 1)
	require.NoError(t, err)
	return items, p
}

func TestPlace(t *testing.T) {
	items, _ := filledCart(t)

	o, err := Place(items, Customer{Name: "Léa", Email: "lea@example.com"}, &Address{City: "Lyon"}, now, "1001")
	require.NoError(t, err)

	assert.Equal(t, "#1001", o.DisplayID())
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, now, o.Date)
	assert.True(t, o.Total.Equal(dec("263.2")), o.Total.String()) // 242 + 21.2
	assert.False(t, o.HasDropship)
	assert.Empty(t, o.SupplierStatus)
	require.NotNil(t, o.Shipping)
	assert.Equal(t, "Lyon", o.Shipping.City)
}

func TestPlace_Errors(t *testing.T) {
	_, err := Place(nil, Customer{Email: "a@b.c"}, nil, now, "1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	items, _ := filledCart(t)
	_, err = Place(items, Customer{Name: "x"}, nil, now, "1")
	assert.ErrorIs(t, err, ErrMissingCustomer)
}

func TestPlace_Dropship(t *testing.T) {
	items, _ := filledCart(t)
	spa := catalog.Product{ID: "spa", Price: catalog.Amount(dec("3000")), Dropship: true}
	items, err := cart.Add(items, spa, "", 1)
	require.NoError(t, err)

	o, err := Place(items, Customer{Email: "a@b.c"}, nil, now, "1")
	require.NoError(t, err)
	assert.True(t, o.HasDropship)
	assert.Equal(t, SupplierPending, o.SupplierStatus)
}

func TestPlace_TotalIsImmutable(t *testing.T) {
	items, live := filledCart(t)
	o, err := Place(items, Customer{Email: "a@b.c"}, nil, now, "1001")
	require.NoError(t, err)
	before := o.Total

	// Reprice the catalog product and mutate the cart afterwards.
	*live.Price = dec("999")
	*items[0].Product.Price = dec("1")
	items[0].Quantity = 50

	assert.True(t, o.Total.Equal(before))
	assert.True(t, o.Items[0].Product.Price.Equal(dec("100")))
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, "1001", NextID(nil, 1001))
	assert.Equal(t, "1006", NextID([]Order{{ID: "1003"}, {ID: "1005"}, {ID: "legacy-x"}}, 1001))
	assert.Equal(t, "1001", NextID([]Order{{ID: "7"}}, 1001))
}

func TestSetStatus(t *testing.T) {
	orders := []Order{{ID: "1001", Status: StatusPending, Total: dec("10")}}

	out, err := SetStatus(orders, "#1001", StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, out[0].Status)
	assert.Equal(t, StatusPending, orders[0].Status)
	assert.True(t, out[0].Total.Equal(dec("10")))

	_, err = SetStatus(orders, "9999", StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SetStatus(orders, "1001", Status("Perdue"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetSupplierStatus(t *testing.T) {
	orders := []Order{{ID: "1", HasDropship: true, SupplierStatus: SupplierPending}, {ID: "2"}}

	out, err := SetSupplierStatus(orders, "1", SupplierShipped)
	require.NoError(t, err)
	assert.Equal(t, SupplierShipped, out[0].SupplierStatus)

	_, err = SetSupplierStatus(orders, "2", SupplierShipped)
	assert.ErrorIs(t, err, ErrNotDropship)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	s, err = ParseStatus("Expédiée")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFindAndForCustomer(t *testing.T) {
	orders := []Order{
		{ID: "1", CustomerEmail: "a@b.c"},
		{ID: "2", CustomerEmail: "x@y.z"},
		{ID: "3", CustomerEmail: "A@B.C"},
	}

	o, ok := Find(orders, "#2")
	assert.True(t, ok)
	assert.Equal(t, "2", o.ID)

	hist := ForCustomer(orders, "a@b.c")
	require.Len(t, hist, 2)
	assert.Equal(t, "3", hist[0].ID)
}
