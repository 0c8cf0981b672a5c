package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/poolstore/internal/cart"
	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/order"
	"github.com/roach88/poolstore/internal/pricing"
	"github.com/roach88/poolstore/internal/query"
	"github.com/roach88/poolstore/internal/shop"
)

// CaseSuccess is the outcome of an action that returned no error.
const CaseSuccess = "Success"

// action runs one named step against the harness.
type action func(ctx context.Context, h *Harness, a args) (map[string]any, error)

var actions = map[string]action{
	"Catalog.browse":           browse,
	"Catalog.view":             view,
	"Wishlist.toggle":          toggleWishlist,
	"Cart.add":                 addToCart,
	"Cart.setQuantity":         setCartQuantity,
	"Cart.remove":              removeFromCart,
	"Cart.totals":              cartTotals,
	"Checkout.place":           checkout,
	"Admin.saveProduct":        saveProduct,
	"Admin.updateProduct":      updateProduct,
	"Admin.deleteProduct":      deleteProduct,
	"Admin.renameCategory":     renameCategory,
	"Admin.duplicateCategory":  duplicateCategory,
	"Admin.deleteCategory":     deleteCategory,
	"Orders.setStatus":         setOrderStatus,
	"Orders.setSupplierStatus": setSupplierStatus,
	"Store.failWrites":         failWrites,
	"Store.restart":            restart,
}

func knownAction(name string) bool {
	_, ok := actions[name]
	return ok
}

// outcomes maps domain errors to output case names, first match wins.
var outcomes = []struct {
	err  error
	name string
}{
	{catalog.ErrNotFound, "NotFound"},
	{order.ErrNotFound, "NotFound"},
	{cart.ErrInvalidQuantity, "InvalidQuantity"},
	{cart.ErrOutOfStock, "OutOfStock"},
	{cart.ErrUnknownVariant, "UnknownVariant"},
	{cart.ErrNotInCart, "NotInCart"},
	{order.ErrEmptyCart, "EmptyCart"},
	{order.ErrMissingCustomer, "MissingCustomer"},
	{order.ErrInvalidStatus, "InvalidStatus"},
	{order.ErrNotDropship, "NotDropship"},
	{shop.ErrInvalidProduct, "InvalidProduct"},
	{shop.ErrInvalidCategory, "InvalidCategory"},
}

// outputCase names the outcome of err.
func outputCase(err error) string {
	if err == nil {
		return CaseSuccess
	}
	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.name
		}
	}
	return "Error"
}

func browse(_ context.Context, h *Harness, a args) (map[string]any, error) {
	page, err := a.int("page", 1)
	if err != nil {
		return nil, err
	}
	size, err := a.int("pageSize", -1)
	if err != nil {
		return nil, err
	}
	sortKey, err := query.ParseSortKey(a.string("sort"))
	if err != nil {
		return nil, err
	}

	p := query.Params{
		Category:   a.string("category"),
		OnSaleOnly: a.bool("onSale"),
		Search:     a.string("search"),
		Sort:       sortKey,
		Page:       page,
		PageSize:   size,
	}
	for _, raw := range a.strings("bands") {
		band, err := query.ParseBand(raw)
		if err != nil {
			return nil, err
		}
		p.PriceBands = append(p.PriceBands, band)
	}
	if attrs := a.object("attributes"); len(attrs) > 0 {
		p.Attributes = make(map[string][]string, len(attrs))
		for name := range attrs {
			p.Attributes[name] = args(attrs).strings(name)
		}
	}

	res := h.svc.Browse(p)

	items := make([]any, len(res.Items))
	for i, it := range res.Items {
		items[i] = it.ID
	}
	facets := make([]any, len(res.Facets))
	for i, f := range res.Facets {
		values := make([]any, len(f.Values))
		for j, v := range f.Values {
			values[j] = fmt.Sprintf("%s (%d)", v.Value, v.Count)
		}
		facets[i] = map[string]any{"name": f.Name, "values": values}
	}
	return map[string]any{
		"items":      items,
		"total":      res.Total,
		"page":       res.Page,
		"totalPages": res.TotalPages,
		"facets":     facets,
	}, nil
}

func view(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	p, err := h.svc.ViewProduct(ctx, a.string("id"))
	if err != nil {
		return nil, err
	}
	out := map[string]any{"id": p.ID, "inStock": p.InStock("")}
	if unit := pricing.EffectiveUnitPrice(p, nil); unit.Known {
		out["gross"] = money(unit.Gross)
	}
	if ref, ok := pricing.ReferencePrice(p); ok {
		out["reference"] = money(ref)
		out["discount"] = pricing.DiscountPercent(p)
	}
	return out, nil
}

func toggleWishlist(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	in, err := h.svc.ToggleWishlist(ctx, a.string("id"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"inWishlist": in}, nil
}

func cartSummary(items []cart.Item) map[string]any {
	return map[string]any{"lines": len(items), "units": cart.Count(items)}
}

func addToCart(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	qty, err := a.int("quantity", 1)
	if err != nil {
		return nil, err
	}
	items, err := h.svc.AddToCart(ctx, a.string("product"), a.string("variant"), qty)
	if err != nil {
		return nil, err
	}
	return cartSummary(items), nil
}

func setCartQuantity(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	qty, err := a.int("quantity", 0)
	if err != nil {
		return nil, err
	}
	key := cart.Key{ProductID: a.string("product"), VariantID: a.string("variant")}
	items, err := h.svc.SetCartQuantity(ctx, key, qty)
	if err != nil {
		return nil, err
	}
	return cartSummary(items), nil
}

func removeFromCart(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	key := cart.Key{ProductID: a.string("product"), VariantID: a.string("variant")}
	return cartSummary(h.svc.RemoveFromCart(ctx, key)), nil
}

func cartTotals(_ context.Context, h *Harness, _ args) (map[string]any, error) {
	t := h.svc.CartTotals()
	return map[string]any{"net": money(t.Net), "tax": money(t.Tax), "gross": money(t.Gross)}, nil
}

func checkout(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	c := order.Customer{Name: a.string("name"), Email: a.string("email")}
	var shipping *order.Address
	if a.string("street") != "" {
		shipping = &order.Address{
			Street:     a.string("street"),
			PostalCode: a.string("postalCode"),
			City:       a.string("city"),
			Country:    a.string("country"),
		}
	}
	o, err := h.svc.Checkout(ctx, c, shipping)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"order":       o.DisplayID(),
		"total":       money(o.Total),
		"status":      string(o.Status),
		"hasDropship": o.HasDropship,
	}, nil
}

// decodeProduct reads a product from its persisted JSON shape.
func decodeProduct(fields map[string]any) (catalog.Product, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return catalog.Product{}, err
	}
	var p catalog.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func saveProduct(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	p, err := decodeProduct(a.object("product"))
	if err != nil {
		return nil, err
	}
	saved, err := h.svc.SaveProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": saved.ID}, nil
}

// updateProduct overlays fields on the stored product's JSON.
func updateProduct(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	current, err := h.svc.Product(a.string("id"))
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for k, v := range a.object("fields") {
		merged[k] = v
	}
	merged["id"] = current.ID

	p, err := decodeProduct(merged)
	if err != nil {
		return nil, err
	}
	if _, err := h.svc.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return map[string]any{"id": p.ID}, nil
}

func deleteProduct(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	if err := h.svc.DeleteProduct(ctx, a.string("id")); err != nil {
		return nil, err
	}
	return map[string]any{}, nil
}

func renameCategory(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	path, n, err := h.svc.RenameCategory(ctx, a.string("path"), a.string("name"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"path": path, "products": n}, nil
}

func duplicateCategory(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	n, err := h.svc.DuplicateCategory(ctx, a.string("from"), a.string("to"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"products": n}, nil
}

func deleteCategory(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	n, err := h.svc.DeleteCategory(ctx, a.string("path"))
	if err != nil {
		return nil, err
	}
	return map[string]any{"products": n}, nil
}

func setOrderStatus(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	st, err := order.ParseStatus(a.string("status"))
	if err != nil {
		return nil, err
	}
	o, err := h.svc.SetOrderStatus(ctx, a.string("id"), st)
	if err != nil {
		return nil, err
	}
	return map[string]any{"order": o.DisplayID(), "status": string(o.Status)}, nil
}

func setSupplierStatus(ctx context.Context, h *Harness, a args) (map[string]any, error) {
	o, err := h.svc.SetSupplierStatus(ctx, a.string("id"), order.SupplierStatus(a.string("status")))
	if err != nil {
		return nil, err
	}
	return map[string]any{"order": o.DisplayID(), "supplierStatus": string(o.SupplierStatus)}, nil
}

func failWrites(_ context.Context, h *Harness, a args) (map[string]any, error) {
	if a.bool("enabled") {
		h.kv.FailWrites(errStoreUnavailable)
	} else {
		h.kv.FailWrites(nil)
	}
	return map[string]any{}, nil
}

// restart drops every in-memory collection and hydrates again from the
// store, as a process restart would.
func restart(ctx context.Context, h *Harness, _ args) (map[string]any, error) {
	h.boot(ctx)
	return map[string]any{}, nil
}
