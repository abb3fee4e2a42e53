//go:build linux
// +build linux

package netio

import (
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Listener owns a bound, listening, non-blocking TCP socket.
type Listener struct {
	fd     int
	addr   string
	closed bool
}

// Listen binds a non-blocking IPv4 TCP listener on addr ("host:port").
// Port 0 picks an ephemeral port; Addr reports the bound address.
func Listen(addr string, backlog int) (*Listener, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen address %q", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen port %q", portStr)
	}
	var ip4 [4]byte
	if host != "" {
		ip := net.ParseIP(host)
		if ip == nil || ip.To4() == nil {
			return nil, errors.Errorf("listen address %q: not an IPv4 address", host)
		}
		copy(ip4[:], ip.To4())
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "socket create")
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "setsockopt SO_REUSEADDR")
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: port, Addr: ip4}); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "bind %s", addr)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "listen %s", addr)
	}

	bound := addr
	if sa, err := unix.Getsockname(fd); err == nil {
		if sa4, ok := sa.(*unix.SockaddrInet4); ok {
			bound = fmt.Sprintf("%d.%d.%d.%d:%d", sa4.Addr[0], sa4.Addr[1], sa4.Addr[2], sa4.Addr[3], sa4.Port)
		}
	}
	return &Listener{fd: fd, addr: bound}, nil
}

// Fd returns the listening descriptor for readiness registration.
func (l *Listener) Fd() int { return l.fd }

// Addr returns the bound address, with the actual port when 0 was requested.
func (l *Listener) Addr() string { return l.addr }

// Accept takes one pending connection off the listen queue and returns it
// in non-blocking mode. When no connection is pending it returns (nil, nil).
func (l *Listener) Accept() (*Conn, error) {
	nfd, _, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return nil, nil
		}
		return nil, errors.Wrap(err, "accept")
	}
	return &Conn{fd: nfd}, nil
}

// Close releases the listening socket. Safe to call more than once.
func (l *Listener) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	return unix.Close(l.fd)
}

// Conn owns one accepted non-blocking socket.
type Conn struct {
	fd     int
	closed bool
}

// NewConn wraps an existing descriptor. The caller is responsible for
// having put it in non-blocking mode.
func NewConn(fd int) *Conn { return &Conn{fd: fd} }

// Fd returns the connection's descriptor.
func (c *Conn) Fd() int { return c.fd }

// Read reads whatever the socket currently offers into p. A socket with no
// bytes ready yields (0, nil); end of stream yields io.EOF.
func (c *Conn) Read(p []byte) (int, error) {
	n, err := unix.Read(c.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, errors.Wrap(err, "read")
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write attempts one non-blocking write of p. A write the socket cannot
// take right now yields (0, nil); short writes are reported, not retried.
func (c *Conn) Write(p []byte) (int, error) {
	n, err := unix.Write(c.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, errors.Wrap(err, "write")
	}
	return n, nil
}

// Close releases the socket. Safe to call more than once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return unix.Close(c.fd)
}
