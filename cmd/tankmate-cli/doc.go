// Package main provides the entry point for tankmate-cli.
//
// The CLI talks to the Tankmate API for:
//
//   - Account sign-in, registration and session inspection
//   - Tanks, water parameter readings and trends
//   - Maintenance events and tank inhabitants
//   - Local configuration and UI preferences
//
// Usage:
//
//	tankmate-cli login --email me@example.com
//	tankmate-cli tank list -o json
//	tankmate-cli param record --tank t1 --type ph --value 7.2
//	tankmate-cli repl
package main
