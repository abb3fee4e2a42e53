// Package reactor provides the readiness primitive behind the server's
// poll loop: a platform-neutral interface over epoll on Linux, reporting
// which registered descriptors are ready for reading without blocking.
package reactor

// EventReactor defines the readiness-polling operations the server needs.
type EventReactor interface {
	// Register adds a descriptor to the read-interest set.
	Register(fd int) error

	// Unregister removes a descriptor from the interest set.
	Unregister(fd int) error

	// PollNow writes currently ready descriptors into events and returns
	// how many were written. It never blocks: when nothing is ready it
	// returns 0 immediately.
	PollNow(events []Event) (n int, err error)

	// Close releases the underlying primitive. Registered descriptors are
	// not closed; their owners remain responsible for them.
	Close() error
}

// Event identifies one descriptor reported ready for reading.
type Event struct {
	Fd int
}
