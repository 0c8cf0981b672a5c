// Package category models hierarchical product categories.
//
// Categories are stored on products as delimited strings such as
// "Filtration - Pompes - Vitesse variable". At the storage boundary the
// string form is kept; every ancestry decision is made on the parsed
// segment list so that "Filtration" never matches "Filtrations" or
// "Pré-filtration".
//
// # Descendant Rule
//
// B is a descendant of A iff B equals A or B starts with A + " - ".
// Rename, duplicate and delete cascades in package catalog all go through
// IsDescendant.
package category
