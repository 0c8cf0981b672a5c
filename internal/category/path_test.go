package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Equal(t, Path{"Filtration"}, Parse("Filtration"))
	assert.Equal(t, Path{"Filtration", "Pompes", "Vitesse variable"}, Parse("Filtration - Pompes - Vitesse variable"))
	assert.Equal(t, "Filtration - Pompes", Parse("Filtration - Pompes").String())
}

func TestIsDescendantOf(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		ancestor  string
		want      bool
	}{
		{"equal", "Filtration", "Filtration", true},
		{"child", "Filtration - Pompes", "Filtration", true},
		{"grandchild", "Filtration - Pompes - Vitesse variable", "Filtration", true},
		{"parent is not descendant of child", "Filtration", "Filtration - Pompes", false},
		{"shared prefix without separator", "Filtrations", "Filtration", false},
		{"substring elsewhere", "Pré-filtration - Filtration", "Filtration", false},
		{"sibling", "Filtration - Filtres", "Filtration - Pompes", false},
		{"root ancestor", "Chimie", "", true},
		{"leaf prefix", "Filtration - Pompes XL", "Filtration - Pompes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDescendantOf(tt.candidate, tt.ancestor))
		})
	}
}

func TestRebase(t *testing.T) {
	p := Parse("Filtration - Pompes - Vitesse variable")

	got, ok := p.Rebase(Parse("Filtration - Pompes"), Parse("Filtration - Pompes à chaleur"))
	assert.True(t, ok)
	assert.Equal(t, "Filtration - Pompes à chaleur - Vitesse variable", got.String())

	_, ok = p.Rebase(Parse("Chimie"), Parse("Traitement"))
	assert.False(t, ok)

	got, ok = Parse("Filtration").Rebase(Parse("Filtration"), Parse("Entretien - Filtration"))
	assert.True(t, ok)
	assert.Equal(t, "Entretien - Filtration", got.String())
}

func TestRename(t *testing.T) {
	assert.Equal(t, "Filtration - Surpresseurs", Rename(Parse("Filtration - Pompes"), "Surpresseurs").String())
	assert.Equal(t, "Traitement", Rename(Parse("Chimie"), "Traitement").String())
	assert.Nil(t, Rename(nil, "x"))
}

func TestRename_DoesNotAliasInput(t *testing.T) {
	p := Parse("A - B")
	_ = Rename(p, "C")
	assert.Equal(t, "A - B", p.String())
}

func TestLeafAndParent(t *testing.T) {
	p := Parse("A - B - C")
	assert.Equal(t, "C", p.Leaf())
	assert.Equal(t, "A - B", p.Parent().String())
	assert.Equal(t, "", Path(nil).Leaf())
	assert.True(t, Path(nil).Parent().IsRoot())
}
