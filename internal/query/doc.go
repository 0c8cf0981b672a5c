// Package query filters, facets, sorts and paginates a product collection.
//
// # Pipeline
//
// Filters are applied in a fixed order:
//
//  1. Category (descendant rule) or on-sale only
//  2. Free text over name, description and category
//  3. Price bands on the tax-inclusive unit price
//  4. Attribute filters (AND across attributes, OR within one)
//
// Facets are computed from the filtered set, so they only offer values
// that are still reachable. A facet with a single distinct value is
// dropped.
//
// Nothing in this package returns an error. Missing optional fields
// simply contribute nothing to a match.
package query
