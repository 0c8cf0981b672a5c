package catalog

// StockLine is a quantity drawn against a product or one of its variants.
type StockLine struct {
	ProductID string
	VariantID string
	Quantity  int
}

// ConsumeStock decrements tracked stock for each line, never below zero.
// Drop-shipped products, untracked stock and unknown IDs are left unchanged.
// A variant with its own stock is decremented instead of the parent.
func ConsumeStock(products []Product, lines []StockLine) []Product {
	if len(lines) == 0 {
		return products
	}

	out := make([]Product, len(products))
	copy(out, products)
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.ID] = i
	}

	for _, line := range lines {
		i, ok := index[line.ProductID]
		if !ok || out[i].Dropship {
			continue
		}
		p := out[i].Clone()

		if vi := variantIndex(p, line.VariantID); vi >= 0 && p.Variants[vi].Stock != nil {
			p.Variants[vi].Stock = decrement(*p.Variants[vi].Stock, line.Quantity)
		} else if p.Stock != nil {
			p.Stock = decrement(*p.Stock, line.Quantity)
		} else {
			continue
		}
		out[i] = p
	}
	return out
}

func variantIndex(p Product, id string) int {
	if id == "" {
		return -1
	}
	for i, v := range p.Variants {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func decrement(count, qty int) *int {
	n := count - qty
	if n < 0 {
		n = 0
	}
	return &n
}
