// Package apierror normalizes every failure of an API call into one *Error
// with a stable Code.
//
// The transport reports failed calls as *TransportError. DecodeBody turns the
// raw response body into exactly one Body variant, so the normalizer never
// inspects arbitrary shapes. Normalize is applied once per failed operation.
package apierror
