package query

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Reserved category filter values.
const (
	AllCategories      = "Tous"
	PromotionsCategory = "Promotions"
)

// SortKey selects the ordering of results.
type SortKey string

// Supported sort keys. SortDefault keeps collection order.
const (
	SortDefault   SortKey = ""
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// ValidSortKeys lists the accepted sort keys.
var ValidSortKeys = []SortKey{SortDefault, SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}

// Params is the user-selected query state.
type Params struct {
	// Category is a category path. "" and AllCategories select everything;
	// PromotionsCategory behaves like OnSaleOnly with no category filter.
	Category string

	// OnSaleOnly keeps only products flagged as on sale.
	OnSaleOnly bool

	// Search is matched case-insensitively against name, description and category.
	Search string

	// PriceBands are OR'd; each is lower-inclusive, upper-exclusive on the gross price.
	PriceBands []Band

	// Attributes maps an attribute name to its selected values.
	Attributes map[string][]string

	Sort     SortKey
	Page     int // 1-based; values below 1 read as 1
	PageSize int // <= 0 disables pagination
}

// Band is a closed-open price interval [Min, Max). A nil Max is unbounded.
type Band struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// Contains reports whether v lies within the band.
func (b Band) Contains(v decimal.Decimal) bool {
	if v.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || v.LessThan(*b.Max)
}

// String renders the band as "min-max" or "min+".
func (b Band) String() string {
	if b.Max == nil {
		return b.Min.String() + "+"
	}
	return b.Min.String() + "-" + b.Max.String()
}

// ParseBand parses "0-50", "200+", "200-" or "0-Infinity" (unbounded).
func ParseBand(s string) (Band, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "+"); ok {
		lower, err := decimal.NewFromString(strings.TrimSpace(rest))
		if err != nil {
			return Band{}, fmt.Errorf("parse band %q: %w", s, err)
		}
		return Band{Min: lower}, nil
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return Band{}, fmt.Errorf("parse band %q: expected min-max or min+", s)
	}
	lower, err := decimal.NewFromString(strings.TrimSpace(lo))
	if err != nil {
		return Band{}, fmt.Errorf("parse band %q: %w", s, err)
	}
	hi = strings.TrimSpace(hi)
	if hi == "" || strings.EqualFold(hi, "infinity") || strings.EqualFold(hi, "inf") {
		return Band{Min: lower}, nil
	}
	upper, err := decimal.NewFromString(hi)
	if err != nil {
		return Band{}, fmt.Errorf("parse band %q: %w", s, err)
	}
	return Band{Min: lower, Max: &upper}, nil
}

// ParseSortKey validates a sort key.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range ValidSortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return SortDefault, fmt.Errorf("invalid sort %q: must be one of %v", s, ValidSortKeys)
}
