package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, found, err := m.Get(ctx, KeyOrders)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, KeyOrders, "[]"))
	v, found, err := m.Get(ctx, KeyOrders)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", v)
	assert.Equal(t, 1, m.Writes())
}

func TestMemory_FailWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("disk full")

	require.NoError(t, m.Set(ctx, KeyCart, "[]"))
	m.FailWrites(boom)

	err := m.Set(ctx, KeyCart, `[{"quantity":2}]`)
	assert.ErrorIs(t, err, boom)

	raw, _ := m.Raw(KeyCart)
	assert.Equal(t, "[]", raw, "failed write must not change stored value")

	m.FailWrites(nil)
	require.NoError(t, m.Set(ctx, KeyCart, `[{"quantity":2}]`))
	raw, _ = m.Raw(KeyCart)
	assert.Equal(t, `[{"quantity":2}]`, raw)
}

func TestMemory_KeysSorted(t *testing.T) {
	m := NewMemory()
	m.Put(KeyWishlist, "[]")
	m.Put(KeyCart, "[]")

	keys, err := m.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{KeyCart, KeyWishlist}, keys)
}
