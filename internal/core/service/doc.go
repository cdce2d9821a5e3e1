// Package service implements the Tankmate API operations on top of an API
// transport.
//
// Every operation follows the same pipeline: validate the request locally,
// execute the call, normalize any failure once with an operation-specific
// context ("Failed to create tank: ..."), then validate the response body
// against its schema before returning it.
//
// AuthService additionally owns the session lifecycle: it persists tokens on
// login, restores or clears the session at startup, and clears it on 401.
package service
