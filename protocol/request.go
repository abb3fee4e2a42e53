package protocol

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/nioserve/nioserve/api"
)

// Request is one parsed HTTP/1.x request head. It is immutable once built.
type Request struct {
	method  string
	target  string
	version string
	headers map[string]string
}

// ParseRequest parses the full raw request head accumulated for one
// connection: the request line followed by header lines, each terminated
// by CRLF. The request line needs at least three whitespace-separated
// tokens. Header lines split on the first colon; a line without one is
// malformed and aborts the whole request. Duplicate header keys keep the
// last value.
func ParseRequest(raw []byte) (*Request, error) {
	lines := strings.Split(string(raw), "\r\n")
	tokens := strings.Fields(lines[0])
	if len(tokens) < 3 {
		return nil, errors.Wrapf(api.ErrMalformedRequestLine, "%q", lines[0])
	}
	headers := make(map[string]string)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.Wrapf(api.ErrMalformedHeader, "%q", line)
		}
		headers[key] = strings.TrimLeft(val, " \t")
	}
	return &Request{
		method:  strings.ToUpper(tokens[0]),
		target:  tokens[1],
		version: tokens[2],
		headers: headers,
	}, nil
}

// Method returns the uppercased request method.
func (r *Request) Method() string { return r.method }

// Target returns the request target path.
func (r *Request) Target() string { return r.target }

// Version returns the protocol version token.
func (r *Request) Version() string { return r.version }

// Header returns the value for key as it appeared on the wire.
func (r *Request) Header(key string) (string, bool) {
	v, ok := r.headers[key]
	return v, ok
}
