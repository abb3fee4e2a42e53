// Package control exposes the server's run counters for monitoring and
// tests. Counters are atomic so a monitoring goroutine can read them while
// the polling goroutine updates them.
package control

import "sync/atomic"

// Stats counts connection lifecycle events since server construction.
type Stats struct {
	Accepted   atomic.Uint64 // connections accepted
	Served     atomic.Uint64 // requests answered with a response
	ConnErrors atomic.Uint64 // sessions dropped by per-connection failures
}

// Snapshot returns the current counter values keyed by name.
func (s *Stats) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"accepted":    s.Accepted.Load(),
		"served":      s.Served.Load(),
		"conn_errors": s.ConnErrors.Load(),
	}
}
