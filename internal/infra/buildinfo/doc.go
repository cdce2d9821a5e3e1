// Package buildinfo exposes version information injected at link time:
//
//	go build -ldflags "-X github.com/yndnr/tankmate-go/internal/infra/buildinfo.Version=v1.2.0"
//
// Values not injected fall back to the module build info embedded by the
// Go toolchain.
package buildinfo
