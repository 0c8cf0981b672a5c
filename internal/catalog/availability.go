package catalog

// Availability is the tagged stock state of a product or variant:
// TrackedStock or Untracked.
type Availability interface {
	isAvailability()
}

// TrackedStock carries a finite stock count.
type TrackedStock struct {
	Count int
}

// Untracked means stock is not managed (drop-shipped or no count recorded).
type Untracked struct{}

func (TrackedStock) isAvailability() {}
func (Untracked) isAvailability()    {}

// Availability returns the stock state for p, or for one of its variants
// when variantID names a variant carrying its own stock.
func (p Product) Availability(variantID string) Availability {
	if p.Dropship {
		return Untracked{}
	}
	if v, ok := p.Variant(variantID); ok && v.Stock != nil {
		return TrackedStock{Count: *v.Stock}
	}
	if p.Stock != nil {
		return TrackedStock{Count: *p.Stock}
	}
	return Untracked{}
}

// StockPool names the stock count that variantID draws on: the variant's
// own ID when it carries stock, otherwise "" for the parent's count.
// Lines of the same product in the same pool share one count.
func (p Product) StockPool(variantID string) string {
	if v, ok := p.Variant(variantID); ok && v.Stock != nil {
		return v.ID
	}
	return ""
}

// Allows reports whether qty units can be supplied.
func Allows(a Availability, qty int) bool {
	switch a := a.(type) {
	case TrackedStock:
		return qty <= a.Count
	default:
		return true
	}
}

// InStock reports whether at least one unit of p (or its variant) is available.
func (p Product) InStock(variantID string) bool {
	return Allows(p.Availability(variantID), 1)
}
