package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/category"
	"github.com/roach88/poolstore/internal/pricing"
)

// FacetValue is one observed value of an attribute and how many filtered
// products carry it.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet is a filterable attribute with at least two observed values.
type Facet struct {
	Name   string       `json:"name"`
	Values []FacetValue `json:"values"`
}

// Result is one page of a query.
type Result struct {
	Items      []catalog.Product `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Facets     []Facet           `json:"facets"`
}

// Engine runs queries with locale-aware string ordering.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	lang language.Tag
}

// New creates an engine that orders names by the collation rules of lang.
func New(lang language.Tag) *Engine {
	return &Engine{lang: lang}
}

// NewForLocale parses a BCP 47 tag, falling back to French.
func NewForLocale(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return New(tag)
}

// Query filters, facets, sorts and paginates products.
func (e *Engine) Query(products []catalog.Product, params Params) Result {
	// Collators and casers carry buffers; build them per call.
	col := collate.New(e.lang)

	filtered := Filter(products, params)
	facets := computeFacets(filtered, col)
	sortProducts(filtered, params.Sort, col)

	page := params.Page
	if page < 1 {
		page = 1
	}
	items, totalPages := paginate(filtered, page, params.PageSize)

	return Result{
		Items:      items,
		Total:      len(filtered),
		Page:       page,
		TotalPages: totalPages,
		Facets:     facets,
	}
}

// Filter applies the category, text, price and attribute filters in order.
// The returned slice is newly allocated.
func Filter(products []catalog.Product, params Params) []catalog.Product {
	onSale := params.OnSaleOnly
	var ancestor category.Path
	switch params.Category {
	case "", AllCategories:
	case PromotionsCategory:
		onSale = true
	default:
		ancestor = category.Parse(params.Category)
	}

	needle := foldText(strings.TrimSpace(params.Search))
	active := activeAttributes(params.Attributes)

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if onSale && !p.IsOnSale {
			continue
		}
		if ancestor != nil && !category.IsDescendant(category.Parse(p.Category), ancestor) {
			continue
		}
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		if len(params.PriceBands) > 0 && !inAnyBand(p, params.PriceBands) {
			continue
		}
		if !matchesAttributes(p, active) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func foldText(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

func matchesText(p catalog.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Description, p.Category} {
		if field != "" && strings.Contains(foldText(field), needle) {
			return true
		}
	}
	return false
}

func inAnyBand(p catalog.Product, bands []Band) bool {
	unit := pricing.EffectiveUnitPrice(p, nil)
	if !unit.Known {
		return false
	}
	for _, b := range bands {
		if b.Contains(unit.Gross) {
			return true
		}
	}
	return false
}

func activeAttributes(selected map[string][]string) map[string]map[string]bool {
	active := make(map[string]map[string]bool)
	for name, values := range selected {
		if len(values) == 0 {
			continue
		}
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		active[name] = set
	}
	return active
}

func matchesAttributes(p catalog.Product, active map[string]map[string]bool) bool {
	for name, allowed := range active {
		v, ok := p.Attributes[name]
		if !ok || !allowed[v] {
			return false
		}
	}
	return true
}

func computeFacets(products []catalog.Product, col *collate.Collator) []Facet {
	counts := make(map[string]map[string]int)
	for _, p := range products {
		for name, value := range p.Attributes {
			if counts[name] == nil {
				counts[name] = make(map[string]int)
			}
			counts[name][value]++
		}
	}

	facets := make([]Facet, 0, len(counts))
	for name, values := range counts {
		if len(values) < 2 {
			continue
		}
		f := Facet{Name: name, Values: make([]FacetValue, 0, len(values))}
		for v, n := range values {
			f.Values = append(f.Values, FacetValue{Value: v, Count: n})
		}
		slices.SortFunc(f.Values, func(a, b FacetValue) int {
			return col.CompareString(a.Value, b.Value)
		})
		facets = append(facets, f)
	}
	slices.SortFunc(facets, func(a, b Facet) int {
		return col.CompareString(a.Name, b.Name)
	})
	return facets
}

func sortProducts(products []catalog.Product, key SortKey, col *collate.Collator) {
	var cmp func(a, b catalog.Product) int
	switch key {
	case SortNameAsc, SortNameDesc:
		cmp = func(a, b catalog.Product) int { return col.CompareString(a.Name, b.Name) }
	case SortPriceAsc, SortPriceDesc:
		cmp = func(a, b catalog.Product) int {
			pa, _ := pricing.Base(a)
			pb, _ := pricing.Base(b)
			return pa.Cmp(pb)
		}
	default:
		return
	}

	if key == SortNameDesc || key == SortPriceDesc {
		asc := cmp
		cmp = func(a, b catalog.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(products, cmp)
}

func paginate(products []catalog.Product, page, size int) ([]catalog.Product, int) {
	if len(products) == 0 {
		return []catalog.Product{}, 0
	}
	if size <= 0 {
		if page == 1 {
			return products, 1
		}
		return []catalog.Product{}, 1
	}

	totalPages := (len(products) + size - 1) / size
	start := (page - 1) * size
	if start >= len(products) {
		return []catalog.Product{}, totalPages
	}
	end := min(start+size, len(products))
	return products[start:end], totalPages
}
