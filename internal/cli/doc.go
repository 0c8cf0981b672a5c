// Package cli implements the poolstore command tree.
//
// Every command opens the configured store, hydrates the collections,
// runs one storefront operation and reports collections whose writes did
// not reach the store. Output is aligned text or, with --format json, a
// {"status", "data", "error"} envelope.
package cli
