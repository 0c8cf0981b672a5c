package catalog

import (
	"encoding/json"
	"errors"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product ID is not present in a collection.
var ErrNotFound = errors.New("product not found")

// Product is a catalog entry. Prices are tax-exclusive.
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category"`
	Price       *decimal.Decimal  `json:"price,omitempty"`
	TaxRate     decimal.Decimal   `json:"taxRate"`
	PromoPrice  *decimal.Decimal  `json:"promoPrice,omitempty"`
	IsOnSale    bool              `json:"isOnSale"`
	Stock       *int              `json:"stock,omitempty"`
	Dropship    bool              `json:"isDropshipping,omitempty"`
	SupplierID  string            `json:"supplierId,omitempty"`
	Variants    []Variant         `json:"variants,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Image       string            `json:"image,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	ReviewCount int               `json:"reviewCount,omitempty"`
}

// Variant is a purchasable configuration of its parent product.
type Variant struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	PriceModifier decimal.Decimal   `json:"priceModifier"`
	Stock         *int              `json:"stock,omitempty"`
}

// UnmarshalJSON decodes a product, tolerating malformed money fields.
// A price that is missing, null or not a number decodes as absent.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		Price      json.RawMessage `json:"price"`
		PromoPrice json.RawMessage `json:"promoPrice"`
		TaxRate    json.RawMessage `json:"taxRate"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Price = parseAmount(aux.Price)
	p.PromoPrice = parseAmount(aux.PromoPrice)
	if rate := parseAmount(aux.TaxRate); rate != nil {
		p.TaxRate = *rate
	} else {
		p.TaxRate = decimal.Zero
	}
	return nil
}

func parseAmount(raw json.RawMessage) *decimal.Decimal {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &d
}

// Amount returns a pointer to v, for populating optional price fields.
func Amount(v decimal.Decimal) *decimal.Decimal {
	return &v
}

// Variant returns the variant with the given ID.
func (p Product) Variant(id string) (Variant, bool) {
	if id == "" {
		return Variant{}, false
	}
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// Clone returns a deep copy of p. Snapshots taken for carts and orders
// must not share maps, slices or pointers with the live catalog.
func (p Product) Clone() Product {
	out := p
	out.Price = clonePtr(p.Price)
	out.PromoPrice = clonePtr(p.PromoPrice)
	out.Stock = clonePtr(p.Stock)
	out.Attributes = maps.Clone(p.Attributes)
	out.Images = slices.Clone(p.Images)
	if p.Variants != nil {
		out.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			out.Variants[i] = v.clone()
		}
	}
	return out
}

func (v Variant) clone() Variant {
	out := v
	out.Attributes = maps.Clone(v.Attributes)
	out.Stock = clonePtr(v.Stock)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
