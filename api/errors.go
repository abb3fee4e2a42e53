// Package api
//
// Common error taxonomy for the nioserve library. Only readiness-poll
// failures are fatal to the server; everything else is contained to the
// connection that raised it.

package api

import "github.com/pkg/errors"

// Per-connection errors. Each of these closes the affected session only.
var (
	// ErrStreamClosed reports end of input: the peer closed its side of
	// the connection before a complete request was read.
	ErrStreamClosed = errors.New("stream closed")

	// ErrBufferFull reports that a session's line buffer filled up without
	// yielding a complete line. The buffer capacity bounds the total size
	// of a buffered request head.
	ErrBufferFull = errors.New("line buffer full")

	// ErrMalformedRequestLine reports a request line with fewer than three
	// whitespace-separated tokens.
	ErrMalformedRequestLine = errors.New("malformed request line")

	// ErrMalformedHeader reports a header line without a colon.
	ErrMalformedHeader = errors.New("malformed header line")

	// ErrBodyUnset reports a response sent before its body was set; the
	// Content-Length computation requires a non-nil body.
	ErrBodyUnset = errors.New("response body not set")
)

// Process-level errors.
var (
	// ErrNotSupported is returned by platform constructors on operating
	// systems without a readiness primitive implementation.
	ErrNotSupported = errors.New("platform not supported")
)
