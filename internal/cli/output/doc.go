// Package output renders command results as a table, JSON or YAML.
//
// Commands pass domain values. Values that know their table layout
// implement Tabular; anything else falls back to a FIELD/VALUE listing.
package output
