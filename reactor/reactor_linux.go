//go:build linux
// +build linux

// Linux epoll(7) implementation of the EventReactor interface.

package reactor

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// epollReactor is a level-triggered epoll-based event reactor.
type epollReactor struct {
	epfd    int
	scratch []unix.EpollEvent
	closed  bool
}

// New constructs the platform readiness primitive.
func New() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, errors.Wrap(err, "epoll create")
	}
	return &epollReactor{epfd: epfd}, nil
}

// Register adds fd to the epoll interest set with read interest.
// Level-triggered: a ready descriptor stays reported until drained, so an
// entry consumed in one poll becomes eligible again on the next readiness
// change.
func (r *epollReactor) Register(fd int) error {
	ev := unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return errors.Wrap(err, "epoll ctl add")
	}
	return nil
}

// Unregister removes fd from the epoll interest set.
func (r *epollReactor) Unregister(fd int) error {
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return errors.Wrap(err, "epoll ctl del")
	}
	return nil
}

// PollNow performs a zero-timeout epoll_wait and maps the raw events into
// the caller's slice. EINTR counts as an empty poll, not a failure.
func (r *epollReactor) PollNow(events []Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if cap(r.scratch) < len(events) {
		r.scratch = make([]unix.EpollEvent, len(events))
	}
	raw := r.scratch[:len(events)]

	n, err := unix.EpollWait(r.epfd, raw, 0)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, errors.Wrap(err, "epoll wait")
	}
	for i := 0; i < n; i++ {
		events[i] = Event{Fd: int(raw[i].Fd)}
	}
	return n, nil
}

// Close releases the epoll descriptor. Safe to call more than once.
func (r *epollReactor) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.epfd)
}
