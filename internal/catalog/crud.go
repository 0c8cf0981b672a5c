package catalog

import "fmt"

// Find returns the product with the given ID.
func Find(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Upsert replaces the product with p.ID, or appends p when it is new.
func Upsert(products []Product, p Product) []Product {
	out := make([]Product, 0, len(products)+1)
	replaced := false
	for _, existing := range products {
		if existing.ID == p.ID {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, p)
	}
	return out
}

// Remove deletes the product with the given ID.
func Remove(products []Product, id string) ([]Product, error) {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	if len(out) == len(products) {
		return products, fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	return out, nil
}
