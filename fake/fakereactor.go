// Package fake provides in-memory test doubles for the readiness
// primitive, so reactor-level failure paths can be exercised without
// breaking a live epoll descriptor.
package fake

import "github.com/nioserve/nioserve/reactor"

// Reactor implements reactor.EventReactor from scripted state. Queue
// events with Push and force a fatal poll with PollErr.
type Reactor struct {
	Registered map[int]bool
	PollErr    error
	CloseCalls int

	pending []reactor.Event
}

// NewReactor returns an empty fake.
func NewReactor() *Reactor {
	return &Reactor{Registered: make(map[int]bool)}
}

// Push queues an event for the next PollNow.
func (f *Reactor) Push(fd int) {
	f.pending = append(f.pending, reactor.Event{Fd: fd})
}

// Register records read interest in fd.
func (f *Reactor) Register(fd int) error {
	f.Registered[fd] = true
	return nil
}

// Unregister removes fd from the interest set.
func (f *Reactor) Unregister(fd int) error {
	delete(f.Registered, fd)
	return nil
}

// PollNow returns PollErr when set, otherwise hands out queued events.
func (f *Reactor) PollNow(events []reactor.Event) (int, error) {
	if f.PollErr != nil {
		return 0, f.PollErr
	}
	n := copy(events, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

// Close counts invocations so double-release is observable in tests.
func (f *Reactor) Close() error {
	f.CloseCalls++
	return nil
}
