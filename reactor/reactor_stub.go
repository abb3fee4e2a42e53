//go:build !linux
// +build !linux

// Stub constructor for platforms without an epoll implementation.

package reactor

import "github.com/nioserve/nioserve/api"

// New returns an error on unsupported platforms.
func New() (EventReactor, error) {
	return nil, api.ErrNotSupported
}
