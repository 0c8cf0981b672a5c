package catalog

import "github.com/roach88/poolstore/internal/category"

// CopySuffix is appended to the name of a duplicated product.
const CopySuffix = " (copie)"

// IDGenerator produces new unique product identifiers.
type IDGenerator interface {
	Generate() string
}

// RenameCategory replaces the final segment of oldPath with newLeaf and
// rewrites the category of every descendant product, preserving whatever
// follows the old prefix. Returns the new collection, the new path and the
// number of products rewritten.
func RenameCategory(products []Product, oldPath, newLeaf string) ([]Product, string, int) {
	from := category.Parse(oldPath)
	if from.IsRoot() {
		return products, oldPath, 0
	}
	to := category.Rename(from, newLeaf)

	out := make([]Product, len(products))
	changed := 0
	for i, p := range products {
		out[i] = p
		rebased, ok := category.Parse(p.Category).Rebase(from, to)
		if !ok {
			continue
		}
		out[i] = p.Clone()
		out[i].Category = rebased.String()
		changed++
	}
	if changed == 0 {
		return products, to.String(), 0
	}
	return out, to.String(), changed
}

// DuplicateCategory clones every product under sourcePath into destPath.
// Clones get a fresh ID, a rebased category and CopySuffix on their name,
// and are appended after the existing products in source order.
func DuplicateCategory(products []Product, sourcePath, destPath string, ids IDGenerator) ([]Product, int) {
	from := category.Parse(sourcePath)
	to := category.Parse(destPath)
	if from.IsRoot() {
		return products, 0
	}

	var clones []Product
	for _, p := range products {
		rebased, ok := category.Parse(p.Category).Rebase(from, to)
		if !ok {
			continue
		}
		c := p.Clone()
		c.ID = ids.Generate()
		c.Category = rebased.String()
		c.Name = p.Name + CopySuffix
		clones = append(clones, c)
	}
	if len(clones) == 0 {
		return products, 0
	}

	out := make([]Product, 0, len(products)+len(clones))
	out = append(out, products...)
	out = append(out, clones...)
	return out, len(clones)
}

// DeleteCategory removes every product under path.
// Returns the new collection and the number removed.
func DeleteCategory(products []Product, path string) ([]Product, int) {
	target := category.Parse(path)
	if target.IsRoot() {
		return products, 0
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category.IsDescendant(category.Parse(p.Category), target) {
			continue
		}
		out = append(out, p)
	}
	removed := len(products) - len(out)
	if removed == 0 {
		return products, 0
	}
	return out, removed
}

// Categories returns the stored category string of every product, in
// collection order.
func Categories(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Category
	}
	return out
}
