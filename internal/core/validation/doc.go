// Package validation checks values against struct schemas.
//
// A schema is a Go type whose fields carry `validate` tags. Violations are
// reported as "path: message" strings, where path is the dotted JSON path of
// the field ("items[0].name") or "(root)" when no field applies.
//
// Nothing in this package panics; validator panics (for example on a bad
// tag) are recovered and reported as a root violation.
package validation
