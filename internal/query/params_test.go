package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBand(t *testing.T) {
	tests := []struct {
		in      string
		min     string
		max     string // "" = unbounded
		wantErr bool
	}{
		{in: "0-50", min: "0", max: "50"},
		{in: " 50 - 100 ", min: "50", max: "100"},
		{in: "200+", min: "200"},
		{in: "200-", min: "200"},
		{in: "12.5-20", min: "12.5", max: "20"},
		{in: "0-Infinity", min: "0"},
		{in: "200-inf", min: "200"},
		{in: "200-INF", min: "200"},
		{in: "abc", wantErr: true},
		{in: "x-10", wantErr: true},
		{in: "10-y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := ParseBand(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, b.Min.Equal(dec(tt.min)))
			if tt.max == "" {
				assert.Nil(t, b.Max)
			} else {
				require.NotNil(t, b.Max)
				assert.True(t, b.Max.Equal(dec(tt.max)))
			}
		})
	}
}

func TestBandContains(t *testing.T) {
	b, err := ParseBand("50-100")
	require.NoError(t, err)

	assert.True(t, b.Contains(dec("50")))
	assert.True(t, b.Contains(dec("99.99")))
	assert.False(t, b.Contains(dec("100")))
	assert.False(t, b.Contains(dec("49.99")))
	assert.Equal(t, "50-100", b.String())

	open, err := ParseBand("100+")
	require.NoError(t, err)
	assert.True(t, open.Contains(dec("1000000")))
	assert.Equal(t, "100+", open.String())
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("price-desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriceDesc, k)

	_, err = ParseSortKey("random")
	assert.Error(t, err)
}
