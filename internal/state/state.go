package state

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/poolstore/internal/backoffice"
	"github.com/roach88/poolstore/internal/cart"
	"github.com/roach88/poolstore/internal/catalog"
	"github.com/roach88/poolstore/internal/order"
	"github.com/roach88/poolstore/internal/site"
	"github.com/roach88/poolstore/internal/store"
)

// Defaults are the values a collection takes when its key is missing or
// unreadable.
type Defaults struct {
	Products          []catalog.Product
	Users             []backoffice.User
	Suppliers         []backoffice.Supplier
	Invoices          []backoffice.Invoice
	PaymentMethods    []backoffice.PaymentMethod
	EmailTemplates    []backoffice.EmailTemplate
	PurchaseOrders    []backoffice.PurchaseOrder
	InfoBanner        site.InfoBanner
	Popups            []site.Popup
	Menu              site.MenuConfig
	Campaigns         []backoffice.Campaign
	Prospects         []backoffice.Prospect
	Testimonials      []backoffice.Testimonial
	HomeCategories    []site.HomeCategory
	SiteConfig        site.Config
	Pages             map[string]site.PageContent
	CookiePreferences *site.CookiePreferences
}

// State owns every storefront collection. It is the only component that
// talks to the durable store.
type State struct {
	Products          *Collection[[]catalog.Product]
	Cart              *Collection[[]cart.Item]
	Wishlist          *Collection[[]string]
	RecentlyViewed    *Collection[[]string]
	Orders            *Collection[[]order.Order]
	Users             *Collection[[]backoffice.User]
	Suppliers         *Collection[[]backoffice.Supplier]
	Invoices          *Collection[[]backoffice.Invoice]
	PaymentMethods    *Collection[[]backoffice.PaymentMethod]
	EmailTemplates    *Collection[[]backoffice.EmailTemplate]
	CurrentUser       *Collection[*backoffice.User]
	PurchaseOrders    *Collection[[]backoffice.PurchaseOrder]
	InfoBanner        *Collection[site.InfoBanner]
	Popups            *Collection[[]site.Popup]
	Menu              *Collection[site.MenuConfig]
	Campaigns         *Collection[[]backoffice.Campaign]
	Prospects         *Collection[[]backoffice.Prospect]
	Testimonials      *Collection[[]backoffice.Testimonial]
	HomeCategories    *Collection[[]site.HomeCategory]
	SiteConfig        *Collection[site.Config]
	Pages             *Collection[map[string]site.PageContent]
	CookiePreferences *Collection[*site.CookiePreferences]

	all []Syncable
}

// New wires one collection per store key. Nothing is read until Hydrate.
func New(kv store.KV, logger *slog.Logger, d Defaults) *State {
	if logger == nil {
		logger = slog.Default()
	}
	s := &State{}

	s.Products = register(s, store.KeyProducts, kv, logger, func() []catalog.Product { return nonNil(d.Products) })
	s.Cart = register(s, store.KeyCart, kv, logger, func() []cart.Item { return []cart.Item{} })
	s.Wishlist = register(s, store.KeyWishlist, kv, logger, func() []string { return []string{} })
	s.RecentlyViewed = register(s, store.KeyRecentlyViewed, kv, logger, func() []string { return []string{} })
	s.Orders = register(s, store.KeyOrders, kv, logger, func() []order.Order { return []order.Order{} })
	s.Users = register(s, store.KeyUsers, kv, logger, func() []backoffice.User { return nonNil(d.Users) })
	s.Suppliers = register(s, store.KeySuppliers, kv, logger, func() []backoffice.Supplier { return nonNil(d.Suppliers) })
	s.Invoices = register(s, store.KeyInvoices, kv, logger, func() []backoffice.Invoice { return nonNil(d.Invoices) })
	s.PaymentMethods = register(s, store.KeyPaymentMethods, kv, logger, func() []backoffice.PaymentMethod { return nonNil(d.PaymentMethods) })
	s.EmailTemplates = register(s, store.KeyEmailTemplates, kv, logger, func() []backoffice.EmailTemplate { return nonNil(d.EmailTemplates) })
	s.CurrentUser = register(s, store.KeyCurrentUser, kv, logger, func() *backoffice.User { return nil })
	s.PurchaseOrders = register(s, store.KeyPurchaseOrders, kv, logger, func() []backoffice.PurchaseOrder { return nonNil(d.PurchaseOrders) })
	s.InfoBanner = register(s, store.KeyInfoBannerConfig, kv, logger, func() site.InfoBanner { return d.InfoBanner })
	s.Popups = register(s, store.KeyPopupConfigs, kv, logger, func() []site.Popup { return nonNil(d.Popups) })
	s.Menu = register(s, store.KeyMenuConfig, kv, logger, func() site.MenuConfig { return d.Menu })
	s.Campaigns = register(s, store.KeyMarketingCampaigns, kv, logger, func() []backoffice.Campaign { return nonNil(d.Campaigns) })
	s.Prospects = register(s, store.KeyProspects, kv, logger, func() []backoffice.Prospect { return nonNil(d.Prospects) })
	s.Testimonials = register(s, store.KeyTestimonials, kv, logger, func() []backoffice.Testimonial { return nonNil(d.Testimonials) })
	s.HomeCategories = register(s, store.KeyHomeCategories, kv, logger, func() []site.HomeCategory { return nonNil(d.HomeCategories) })
	s.SiteConfig = register(s, store.KeySiteConfig, kv, logger, func() site.Config { return d.SiteConfig })
	s.Pages = register(s, store.KeyPagesContent, kv, logger, func() map[string]site.PageContent {
		if d.Pages == nil {
			return map[string]site.PageContent{}
		}
		return d.Pages
	})
	s.CookiePreferences = register(s, store.KeyCookiePreferences, kv, logger, func() *site.CookiePreferences { return d.CookiePreferences })

	return s
}

func register[T any](s *State, key string, kv store.KV, logger *slog.Logger, def func() T) *Collection[T] {
	c := NewCollection(key, kv, logger, def)
	s.all = append(s.all, c)
	return c
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// Collections returns every collection in store key order.
func (s *State) Collections() []Syncable {
	return append([]Syncable(nil), s.all...)
}

// Hydrate loads every collection. It never fails; unreadable keys fall
// back to their defaults.
func (s *State) Hydrate(ctx context.Context) {
	for _, c := range s.all {
		c.Hydrate(ctx)
	}
}

// Flush writes every collection to the store and joins the failures.
func (s *State) Flush(ctx context.Context) error {
	var errs []error
	for _, c := range s.all {
		if err := c.Persist(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Errs returns the outstanding persist failure of each collection, by key.
func (s *State) Errs() map[string]error {
	out := map[string]error{}
	for _, c := range s.all {
		if err := c.Err(); err != nil {
			out[c.Key()] = err
		}
	}
	return out
}
