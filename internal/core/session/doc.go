// Package session inspects the stored session token on the client side.
//
// Only the JWT payload is decoded; the signature is never verified and the
// result is advisory. The API remains the authority on whether a token is
// accepted. Decode failures mean "not authenticated" and never surface as errors.
package session
