//go:build !linux
// +build !linux

package netio

import "github.com/nioserve/nioserve/api"

// Listener is unavailable on this platform.
type Listener struct{}

// Listen returns an error on unsupported platforms.
func Listen(addr string, backlog int) (*Listener, error) {
	return nil, api.ErrNotSupported
}

func (l *Listener) Fd() int { return -1 }

func (l *Listener) Addr() string { return "" }

func (l *Listener) Accept() (*Conn, error) { return nil, api.ErrNotSupported }

func (l *Listener) Close() error { return nil }

// Conn is unavailable on this platform.
type Conn struct{}

// NewConn is unavailable on this platform.
func NewConn(fd int) *Conn { return &Conn{} }

func (c *Conn) Fd() int { return -1 }

func (c *Conn) Read(p []byte) (int, error) { return 0, api.ErrNotSupported }

func (c *Conn) Write(p []byte) (int, error) { return 0, api.ErrNotSupported }

func (c *Conn) Close() error { return nil }
