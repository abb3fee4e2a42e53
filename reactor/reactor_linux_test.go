//go:build linux
// +build linux

package reactor

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func pair(t *testing.T) (int, int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestPollNowReportsReadable(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	fd, peer := pair(t)
	if err := r.Register(fd); err != nil {
		t.Fatal(err)
	}

	events := make([]Event, 8)
	if n, err := r.PollNow(events); err != nil || n != 0 {
		t.Fatalf("idle poll: got %d, %v", n, err)
	}

	if _, err := unix.Write(peer, []byte("x")); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		n, err := r.PollNow(events)
		if err != nil {
			t.Fatal(err)
		}
		if n == 1 {
			if events[0].Fd != fd {
				t.Fatalf("got fd %d, want %d", events[0].Fd, fd)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("readiness never reported")
		}
		time.Sleep(time.Millisecond)
	}

	// Level-triggered: still reported until drained.
	if n, err := r.PollNow(events); err != nil || n != 1 {
		t.Fatalf("second poll: got %d, %v", n, err)
	}

	if err := r.Unregister(fd); err != nil {
		t.Fatal(err)
	}
	if n, err := r.PollNow(events); err != nil || n != 0 {
		t.Fatalf("poll after unregister: got %d, %v", n, err)
	}
}

func TestCloseTwice(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}
