// Package catalog defines the product data model and the admin mutations
// that operate on a product collection.
//
// Every mutation is replace-on-write: it returns a new slice and never
// modifies the slice or the products it was given. The synchronization
// layer relies on this to swap a whole collection atomically.
//
// Optional pricing and stock fields are exposed as tagged variants
// (Pricing, Availability) so that fallback rules live in one place.
package catalog
