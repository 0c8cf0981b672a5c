// Package cart manages cart lines. Each line carries a snapshot of the
// product taken when it was first added; prices are always computed from
// that snapshot, never from the live catalog.
package cart

import (
	"errors"
	"fmt"

	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/pricing"
)

var (
	// ErrInvalidQuantity is returned when adding fewer than one unit.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrOutOfStock is returned when tracked stock cannot cover the quantity.
	ErrOutOfStock = errors.New("insufficient stock")

	// ErrUnknownVariant is returned when a variant ID is not on the product.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrNotInCart is returned when a line does not exist.
	ErrNotInCart = errors.New("item not in cart")
)

// Item is one cart line. Quantity is always at least 1.
type Item struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	VariantID string          `json:"variantId,omitempty"`
}

// Key identifies a line: the same product with a different variant is a
// different line.
type Key struct {
	ProductID string
	VariantID string
}

// Key returns the line's identity.
func (i Item) Key() Key {
	return Key{ProductID: i.Product.ID, VariantID: i.VariantID}
}

// Unit returns the unit price of the line from its snapshot.
func (i Item) Unit() pricing.UnitPrice {
	return pricing.LineUnitPrice(i.line())
}

func (i Item) line() pricing.Line {
	return pricing.Line{Product: i.Product, VariantID: i.VariantID, Quantity: i.Quantity}
}

// Add puts qty units of p (or its variant) in the cart, merging with an
// existing line. A new line snapshots p; a merged line keeps its original
// snapshot. Stock is checked against p's current availability.
func Add(items []Item, p catalog.Product, variantID string, qty int) ([]Item, error) {
	if qty < 1 {
		return items, fmt.Errorf("add %q: %w", p.ID, ErrInvalidQuantity)
	}
	if variantID != "" {
		if _, ok := p.Variant(variantID); !ok {
			return items, fmt.Errorf("add %q variant %q: %w", p.ID, variantID, ErrUnknownVariant)
		}
	}

	key := Key{ProductID: p.ID, VariantID: variantID}
	idx := indexOf(items, key)
	if !catalog.Allows(p.Availability(variantID), demand(items, p, variantID, -1)+qty) {
		return items, fmt.Errorf("add %q: %w", p.ID, ErrOutOfStock)
	}

	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	if idx >= 0 {
		out[idx].Quantity += qty
		return out, nil
	}
	return append(out, Item{Product: p.Clone(), Quantity: qty, VariantID: variantID}), nil
}

// SetQuantity changes the quantity of a line. A quantity of zero or less
// removes the line. live is the current catalog product; the check covers
// every line drawing on the same stock pool. A nil live product (deleted
// from the catalog) is not stock-checked.
func SetQuantity(items []Item, key Key, qty int, live *catalog.Product) ([]Item, error) {
	idx := indexOf(items, key)
	if idx < 0 {
		return items, fmt.Errorf("set quantity %q: %w", key.ProductID, ErrNotInCart)
	}
	if qty <= 0 {
		return Remove(items, key), nil
	}
	if live != nil && !catalog.Allows(live.Availability(key.VariantID), demand(items, *live, key.VariantID, idx)+qty) {
		return items, fmt.Errorf("set quantity %q: %w", key.ProductID, ErrOutOfStock)
	}

	out := make([]Item, len(items))
	copy(out, items)
	out[idx].Quantity = qty
	return out, nil
}

// CheckStock verifies that live stock covers the units every stock pool
// is asked for. lookup returns the current catalog product; lines whose
// product is gone are not checked.
func CheckStock(items []Item, lookup func(id string) (catalog.Product, bool)) error {
	for _, it := range items {
		p, ok := lookup(it.Product.ID)
		if !ok {
			continue
		}
		if !catalog.Allows(p.Availability(it.VariantID), demand(items, p, it.VariantID, -1)) {
			return fmt.Errorf("%q: %w", it.Product.ID, ErrOutOfStock)
		}
	}
	return nil
}

// demand sums the units of the lines of p that draw on the same stock
// pool as variantID, leaving out the line at index skip.
func demand(items []Item, p catalog.Product, variantID string, skip int) int {
	pool := p.StockPool(variantID)
	n := 0
	for i, it := range items {
		if i == skip || it.Product.ID != p.ID || p.StockPool(it.VariantID) != pool {
			continue
		}
		n += it.Quantity
	}
	return n
}

// Remove deletes a line. Removing a missing line is a no-op.
func Remove(items []Item, key Key) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Key() != key {
			out = append(out, it)
		}
	}
	return out
}

// Count returns the total number of units.
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Totals prices the cart from the line snapshots.
func Totals(items []Item) pricing.Totals {
	lines := make([]pricing.Line, len(items))
	for i, it := range items {
		lines[i] = it.line()
	}
	return pricing.CartTotals(lines)
}

// StockLines converts the cart into stock draws for catalog.ConsumeStock.
func StockLines(items []Item) []catalog.StockLine {
	out := make([]catalog.StockLine, len(items))
	for i, it := range items {
		out[i] = catalog.StockLine{ProductID: it.Product.ID, VariantID: it.VariantID, Quantity: it.Quantity}
	}
	return out
}

// Snapshot deep-copies items so the copy shares nothing with the cart.
func Snapshot(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Product: it.Product.Clone(), Quantity: it.Quantity, VariantID: it.VariantID}
	}
	return out
}

func indexOf(items []Item, key Key) int {
	for i, it := range items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}
