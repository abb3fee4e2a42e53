//go:build linux
// +build linux

package netio

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

func listen(t *testing.T) *Listener {
	t.Helper()
	ln, err := Listen("127.0.0.1:0", 16)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	return ln
}

// acceptSoon retries the non-blocking accept until the kernel has finished
// the handshake.
func acceptSoon(t *testing.T, ln *Listener) *Conn {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		conn, err := ln.Accept()
		if err != nil {
			t.Fatal(err)
		}
		if conn != nil {
			t.Cleanup(func() { conn.Close() })
			return conn
		}
		if time.Now().After(deadline) {
			t.Fatal("no connection accepted")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestListenEphemeralPort(t *testing.T) {
	ln := listen(t)
	if strings.HasSuffix(ln.Addr(), ":0") {
		t.Fatalf("addr %q still has port 0", ln.Addr())
	}
	if _, err := net.ResolveTCPAddr("tcp", ln.Addr()); err != nil {
		t.Fatalf("addr %q: %v", ln.Addr(), err)
	}
}

func TestListenBadAddress(t *testing.T) {
	if _, err := Listen("not-an-address", 16); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := Listen("[::1]:0", 16); err == nil {
		t.Fatal("IPv6 listen address must be rejected")
	}
}

func TestAcceptWithNothingPending(t *testing.T) {
	ln := listen(t)
	conn, err := ln.Accept()
	if err != nil {
		t.Fatal(err)
	}
	if conn != nil {
		t.Fatal("expected no pending connection")
	}
}

func TestConnReadSemantics(t *testing.T) {
	ln := listen(t)
	peer, err := net.Dial("tcp", ln.Addr())
	if err != nil {
		t.Fatal(err)
	}
	conn := acceptSoon(t, ln)

	// Nothing ready yet: zero bytes, no error.
	buf := make([]byte, 64)
	if n, err := conn.Read(buf); n != 0 || err != nil {
		t.Fatalf("empty read: got %d, %v", n, err)
	}

	if _, err := peer.Write([]byte("ping")); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			t.Fatal(err)
		}
		if n > 0 {
			if string(buf[:n]) != "ping" {
				t.Fatalf("got %q", buf[:n])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("bytes never arrived")
		}
		time.Sleep(time.Millisecond)
	}

	// Peer close surfaces as EOF.
	peer.Close()
	deadline = time.Now().Add(5 * time.Second)
	for {
		n, err := conn.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Fatalf("unexpected %d bytes", n)
		}
		if time.Now().After(deadline) {
			t.Fatal("EOF never observed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCloseIdempotent(t *testing.T) {
	ln := listen(t)
	if err := ln.Close(); err != nil {
		t.Fatal(err)
	}
	if err := ln.Close(); err != nil {
		t.Fatal(err)
	}
}
