package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	roots := BuildTree([]string{
		"Filtration - Pompes",
		"Filtration - Filtres",
		"Filtration - Pompes",
		"Chimie",
		"",
	})

	require.Len(t, roots, 2)
	assert.Equal(t, "Filtration", roots[0].Name)
	assert.Equal(t, 3, roots[0].Count)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Pompes", roots[0].Children[0].Name)
	assert.Equal(t, "Filtration - Pompes", roots[0].Children[0].Path)
	assert.Equal(t, 2, roots[0].Children[0].Count)
	assert.Equal(t, "Chimie", roots[1].Name)
	assert.Empty(t, roots[1].Children)
}

func TestFind(t *testing.T) {
	roots := BuildTree([]string{"A - B - C", "A - D"})

	n := Find(roots, "A - B")
	require.NotNil(t, n)
	assert.Equal(t, "B", n.Name)
	assert.Nil(t, Find(roots, "A - X"))
	assert.Nil(t, Find(roots, "Z"))
}
