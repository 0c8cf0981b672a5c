// Package shop is the storefront application service.
//
// Service is the single dispatcher through which every user or admin
// action flows. It reads collections from a state.State, applies the pure
// catalog, cart, order and query functions, and writes the results back.
// All operations are serialized by one mutex, so mutations of a
// collection apply in call order.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/roach88/poolstore/internal/cart"
	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/category"
	"github.com/roach88/poolstore/internal/ident"
	"github.com/roach88/poolstore/internal/order"
	"github.com/roach88/poolstore/internal/pricing"
	"github.com/roach88/poolstore/internal/query"
	"github.com/roach88/poolstore/internal/state"
)

var (
	// ErrInvalidProduct is returned when saving a product without a name.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrInvalidCategory is returned for an empty path or a leaf containing
	// the path separator.
	ErrInvalidCategory = errors.New("invalid category")
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to date orders.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithIDs sets the generator for new product IDs.
func WithIDs(g ident.Generator) Option {
	return func(s *Service) { s.ids = g }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPageSize sets the page size used when a query leaves it at zero.
func WithPageSize(n int) Option {
	return func(s *Service) { s.pageSize = n }
}

// WithLocale sets the collation locale for name sorting.
func WithLocale(locale string) Option {
	return func(s *Service) { s.engine = query.NewForLocale(locale) }
}

// WithRecentlyViewedLimit caps the recently viewed list.
func WithRecentlyViewedLimit(n int) Option {
	return func(s *Service) { s.recentLimit = n }
}

// WithFirstOrderNumber sets the ID of the first order ever placed.
func WithFirstOrderNumber(n int) Option {
	return func(s *Service) { s.firstOrder = n }
}

// Service is the storefront dispatcher.
type Service struct {
	mu sync.Mutex

	st     *state.State
	engine *query.Engine
	clock  Clock
	ids    ident.Generator
	logger *slog.Logger

	pageSize    int
	recentLimit int
	firstOrder  int
}

// New creates a Service over a hydrated state.
func New(st *state.State, opts ...Option) *Service {
	s := &Service{
		st:          st,
		engine:      query.NewForLocale("fr"),
		clock:       systemClock{},
		ids:         ident.UUIDv7Generator{},
		logger:      slog.Default(),
		pageSize:    12,
		recentLimit: 8,
		firstOrder:  1001,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the underlying collections.
func (s *Service) State() *state.State {
	return s.st
}

// PersistErrors reports collections whose latest write failed.
func (s *Service) PersistErrors() map[string]error {
	return s.st.Errs()
}

// Browse runs a catalog query. A zero PageSize uses the configured one.
func (s *Service) Browse(p query.Params) query.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.PageSize == 0 {
		p.PageSize = s.pageSize
	}
	return s.engine.Query(s.st.Products.Get(), p)
}

// Product returns one product.
func (s *Service) Product(id string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.product(id)
}

func (s *Service) product(id string) (catalog.Product, error) {
	p, ok := catalog.Find(s.st.Products.Get(), id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %q: %w", id, catalog.ErrNotFound)
	}
	return p, nil
}

// ViewProduct returns a product and moves it to the front of the recently
// viewed list.
func (s *Service) ViewProduct(ctx context.Context, id string) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.product(id)
	if err != nil {
		return catalog.Product{}, err
	}
	limit := s.recentLimit
	s.st.RecentlyViewed.Update(ctx, func(ids []string) []string {
		return pushFront(ids, id, limit)
	})
	return p, nil
}

// RecentlyViewed returns recently viewed products, most recent first.
// Products deleted since are skipped.
func (s *Service) RecentlyViewed() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.st.RecentlyViewed.Get())
}

// ToggleWishlist adds or removes a product and reports whether it is now
// in the wishlist.
func (s *Service) ToggleWishlist(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.st.Wishlist.Get()
	if i := slices.Index(list, id); i >= 0 {
		s.st.Wishlist.Set(ctx, slices.Delete(slices.Clone(list), i, i+1))
		return false, nil
	}
	if _, err := s.product(id); err != nil {
		return false, err
	}
	s.st.Wishlist.Set(ctx, append(slices.Clone(list), id))
	return true, nil
}

// Wishlist returns the wishlisted products in the order they were added.
func (s *Service) Wishlist() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(s.st.Wishlist.Get())
}

func (s *Service) resolve(ids []string) []catalog.Product {
	products := s.st.Products.Get()
	out := []catalog.Product{}
	for _, id := range ids {
		if p, ok := catalog.Find(products, id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Cart returns the cart lines.
func (s *Service) Cart() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Snapshot(s.st.Cart.Get())
}

// AddToCart adds qty units of a product, or one of its variants.
func (s *Service) AddToCart(ctx context.Context, productID, variantID string, qty int) ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.product(productID)
	if err != nil {
		return nil, err
	}
	items, err := cart.Add(s.st.Cart.Get(), p, variantID, qty)
	if err != nil {
		return nil, err
	}
	s.st.Cart.Set(ctx, items)
	return cart.Snapshot(items), nil
}

// SetCartQuantity changes the quantity of a line. Zero or less removes it.
func (s *Service) SetCartQuantity(ctx context.Context, key cart.Key, qty int) ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var live *catalog.Product
	if p, ok := catalog.Find(s.st.Products.Get(), key.ProductID); ok {
		live = &p
	}
	items, err := cart.SetQuantity(s.st.Cart.Get(), key, qty, live)
	if err != nil {
		return nil, err
	}
	s.st.Cart.Set(ctx, items)
	return cart.Snapshot(items), nil
}

// RemoveFromCart removes a line. Removing an absent line is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, key cart.Key) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := cart.Remove(s.st.Cart.Get(), key)
	s.st.Cart.Set(ctx, items)
	return cart.Snapshot(items)
}

// CartTotals returns the cart totals rounded to cents.
func (s *Service) CartTotals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Totals(s.st.Cart.Get()).Round(2)
}

// Checkout places an order for the current cart, consumes stock and
// empties the cart.
func (s *Service) Checkout(ctx context.Context, c order.Customer, shipping *order.Address) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.st.Cart.Get()
	products := s.st.Products.Get()
	lookup := func(id string) (catalog.Product, bool) { return catalog.Find(products, id) }
	if err := cart.CheckStock(items, lookup); err != nil {
		return order.Order{}, fmt.Errorf("checkout %w", err)
	}

	orders := s.st.Orders.Get()
	o, err := order.Place(items, c, shipping, s.clock.Now(), order.NextID(orders, s.firstOrder))
	if err != nil {
		return order.Order{}, err
	}

	s.st.Orders.Set(ctx, append(slices.Clone(orders), o))
	s.st.Products.Update(ctx, func(products []catalog.Product) []catalog.Product {
		return catalog.ConsumeStock(products, cart.StockLines(items))
	})
	s.st.Cart.Set(ctx, []cart.Item{})

	s.logger.Info("order placed",
		"order", o.DisplayID(),
		"lines", len(o.Items),
		"total", o.Total.StringFixed(2),
		"dropship", o.HasDropship,
	)
	return o, nil
}

// SaveProduct creates or replaces a product. A product without an ID gets
// a new one.
func (s *Service) SaveProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(p.Name) == "" {
		return catalog.Product{}, fmt.Errorf("save product: name is required: %w", ErrInvalidProduct)
	}
	if p.ID == "" {
		p.ID = s.ids.Generate()
	}
	s.st.Products.Update(ctx, func(products []catalog.Product) []catalog.Product {
		return catalog.Upsert(products, p)
	})
	return p, nil
}

// DeleteProduct removes a product and drops it from the wishlist and the
// recently viewed list. Cart lines and orders keep their snapshots.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := catalog.Remove(s.st.Products.Get(), id)
	if err != nil {
		return err
	}
	s.st.Products.Set(ctx, products)
	s.forget(ctx, func(ref string) bool { return ref == id })
	return nil
}

// forget drops wishlist and recently viewed entries matching gone.
func (s *Service) forget(ctx context.Context, gone func(string) bool) {
	if list := s.st.Wishlist.Get(); slices.ContainsFunc(list, gone) {
		s.st.Wishlist.Set(ctx, slices.DeleteFunc(slices.Clone(list), gone))
	}
	if list := s.st.RecentlyViewed.Get(); slices.ContainsFunc(list, gone) {
		s.st.RecentlyViewed.Set(ctx, slices.DeleteFunc(slices.Clone(list), gone))
	}
}

// RenameCategory renames the last segment of path for every product at or
// below it. Returns the new path and the number of products changed.
func (s *Service) RenameCategory(ctx context.Context, path, leaf string) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	leaf = strings.TrimSpace(leaf)
	if category.Parse(path).IsRoot() || leaf == "" || strings.Contains(leaf, category.Separator) {
		return "", 0, fmt.Errorf("rename %q to %q: %w", path, leaf, ErrInvalidCategory)
	}

	products, newPath, n := catalog.RenameCategory(s.st.Products.Get(), path, leaf)
	if n > 0 {
		s.st.Products.Set(ctx, products)
	}
	s.logger.Debug("category renamed", "from", path, "to", newPath, "products", n)
	return newPath, n, nil
}

// DuplicateCategory copies every product at or below src into dst.
func (s *Service) DuplicateCategory(ctx context.Context, src, dst string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.Parse(src).IsRoot() || category.Parse(dst).IsRoot() {
		return 0, fmt.Errorf("duplicate %q to %q: %w", src, dst, ErrInvalidCategory)
	}

	products, n := catalog.DuplicateCategory(s.st.Products.Get(), src, dst, s.ids)
	if n > 0 {
		s.st.Products.Set(ctx, products)
	}
	s.logger.Debug("category duplicated", "from", src, "to", dst, "products", n)
	return n, nil
}

// DeleteCategory removes every product at or below path.
func (s *Service) DeleteCategory(ctx context.Context, path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.Parse(path).IsRoot() {
		return 0, fmt.Errorf("delete %q: %w", path, ErrInvalidCategory)
	}

	before := s.st.Products.Get()
	products, n := catalog.DeleteCategory(before, path)
	if n == 0 {
		return 0, nil
	}
	s.st.Products.Set(ctx, products)

	kept := make(map[string]bool, len(products))
	for _, p := range products {
		kept[p.ID] = true
	}
	s.forget(ctx, func(id string) bool { return !kept[id] })

	s.logger.Debug("category deleted", "path", path, "products", n)
	return n, nil
}

// CategoryTree returns the hierarchy derived from product categories.
func (s *Service) CategoryTree() []*category.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return category.BuildTree(catalog.Categories(s.st.Products.Get()))
}

// Orders returns every order in placement order.
func (s *Service) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return order.Clone(s.st.Orders.Get())
}

// CustomerOrders returns the orders of one customer, most recent first.
func (s *Service) CustomerOrders(email string) []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return order.Clone(order.ForCustomer(s.st.Orders.Get(), email))
}

// SetOrderStatus changes the workflow status of an order.
func (s *Service) SetOrderStatus(ctx context.Context, id string, st order.Status) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := order.SetStatus(s.st.Orders.Get(), id, st)
	if err != nil {
		return order.Order{}, err
	}
	s.st.Orders.Set(ctx, orders)
	o, _ := order.Find(orders, id)
	return o, nil
}

// SetSupplierStatus changes the supplier status of a drop-shipped order.
func (s *Service) SetSupplierStatus(ctx context.Context, id string, st order.SupplierStatus) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := order.SetSupplierStatus(s.st.Orders.Get(), id, st)
	if err != nil {
		return order.Order{}, err
	}
	s.st.Orders.Set(ctx, orders)
	o, _ := order.Find(orders, id)
	return o, nil
}

// pushFront moves id to the front of ids, keeping at most limit entries.
func pushFront(ids []string, id string, limit int) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, id)
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
