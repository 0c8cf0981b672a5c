// Package harness runs storefront scenarios described in YAML.
//
// A scenario seeds a catalog, invokes shop actions in order and records
// every invocation and its completion in a trace. Each completion carries
// an output case ("Success", "OutOfStock", "NotFound", ...) derived from
// the error the action returned, and a small result object.
//
// Scenarios run against shop.Service over an in-memory store with a
// stepping clock and sequential IDs, so traces are deterministic and can be
// compared with golden files (see RunWithGolden).
//
// # Actions
//
//	Catalog.browse           category, onSale, search, bands, attributes, sort, page, pageSize
//	Catalog.view             id
//	Wishlist.toggle          id
//	Cart.add                 product, variant, quantity
//	Cart.setQuantity         product, variant, quantity
//	Cart.remove              product, variant
//	Cart.totals
//	Checkout.place           name, email, street, postalCode, city, country
//	Admin.saveProduct        product
//	Admin.updateProduct      id, fields
//	Admin.deleteProduct      id
//	Admin.renameCategory     path, name
//	Admin.duplicateCategory  from, to
//	Admin.deleteCategory     path
//	Orders.setStatus         id, status
//	Orders.setSupplierStatus id, status
//	Store.failWrites         enabled
//	Store.restart
//
// Store.restart discards all in-memory collections and hydrates again
// from the store, which exposes exactly what was persisted.
//
// # Assertions
//
//   - trace_contains: an invocation of action with a subset of args
//   - trace_order: actions are invoked in this order
//   - trace_count: action is invoked exactly count times
//   - final_state: the stored collection (a store key) matches expect;
//     list collections select an element with where and may check length
package harness
