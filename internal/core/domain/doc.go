// Package domain defines the core domain models for tankmate.
//
// Domain models are plain values without IO dependencies. This package contains:
//
//   - Tank, Parameter, Event, Inhabitant: the records tracked per aquarium
//   - User and the authentication request/response shapes
//   - Trends: parameter summaries over a date window
//   - Errors: local error codes for argument, auth and storage failures
//
// Request types carry `validate` tags which internal/core/validation
// enforces before anything is sent to the API.
package domain
