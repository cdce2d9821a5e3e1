// Package client is the HTTP client for the Tankmate REST API.
//
// Every request goes to <url>/api/<version><path> with a bearer token when
// one is stored, a fresh X-Request-ID and a 10 second default timeout.
// Failed calls are returned as *apierror.TransportError; callers normalize
// them once.
//
// Queries (GET) are cached for five minutes and retried per
// apierror.ShouldRetry. Mutations are sent once and invalidate the cached
// queries they affect.
package client
