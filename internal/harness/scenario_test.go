package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScenario = `
name: minimal
description: smallest valid scenario
flow:
  - invoke: Cart.totals
assertions:
  - type: trace_count
    action: Cart.totals
    count: 1
`

func TestParseScenario_Minimal(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Len(t, s.Flow, 1)

	products, err := s.Catalog()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: minimalScenario + "\nassertion: []\n",
			want: "failed to parse YAML",
		},
		{
			name: "missing name",
			yaml: "description: d\nflow: [{invoke: Cart.totals}]\nassertions: [{type: trace_count, action: Cart.totals}]",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nflow: [{invoke: Cart.totals}]\nassertions: [{type: trace_count, action: Cart.totals}]",
			want: "description is required",
		},
		{
			name: "empty flow",
			yaml: "name: n\ndescription: d\nflow: []\nassertions: [{type: trace_count, action: Cart.totals}]",
			want: "flow list is required",
		},
		{
			name: "unknown action",
			yaml: "name: n\ndescription: d\nflow: [{invoke: Cart.explode}]\nassertions: [{type: trace_count, action: Cart.totals}]",
			want: `unknown action "Cart.explode"`,
		},
		{
			name: "expect without case",
			yaml: "name: n\ndescription: d\nflow: [{invoke: Cart.totals, expect: {result: {net: '0.00'}}}]\nassertions: [{type: trace_count, action: Cart.totals}]",
			want: "case is required",
		},
		{
			name: "unknown collection",
			yaml: "name: n\ndescription: d\nflow: [{invoke: Cart.totals}]\nassertions: [{type: final_state, collection: sessions, length: 0}]",
			want: `unknown collection "sessions"`,
		},
		{
			name: "final_state without expect",
			yaml: "name: n\ndescription: d\nflow: [{invoke: Cart.totals}]\nassertions: [{type: final_state, collection: cart}]",
			want: "expect or length is required",
		},
		{
			name: "unknown assertion type",
			yaml: "name: n\ndescription: d\nflow: [{invoke: Cart.totals}]\nassertions: [{type: vibes}]",
			want: `unknown assertion type "vibes"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(minimalScenario), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	scenarios, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)

	_, err = LoadDir(t.TempDir())
	assert.ErrorContains(t, err, "no scenario files")
}
