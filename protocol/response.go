package protocol

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/nioserve/nioserve/api"
)

// DefaultVersion is the protocol version stamped on responses.
const DefaultVersion = "HTTP/1.1"

// httpTimeFormat renders Date header values in GMT per RFC 7231.
const httpTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Response is one HTTP/1.x response under construction. It stays mutable
// until sent; headers keep insertion order on the wire.
type Response struct {
	version string
	code    int
	reason  string
	headers HeaderMap
	body    []byte
}

// NewResponse returns a response with the defaults 200 OK, HTTP/1.1 and no
// body. The body must be set before the response can be sent.
func NewResponse() *Response {
	return &Response{
		version: DefaultVersion,
		code:    200,
		reason:  "OK",
	}
}

// SetStatus sets the status code and reason phrase.
func (r *Response) SetStatus(code int, reason string) {
	r.code = code
	r.reason = reason
}

// Code returns the status code.
func (r *Response) Code() int { return r.code }

// Reason returns the reason phrase.
func (r *Response) Reason() string { return r.reason }

// SetHeader stores a header, overwriting any earlier value for the key
// while keeping its position.
func (r *Response) SetHeader(key, value string) { r.headers.Set(key, value) }

// Header returns a previously set header value.
func (r *Response) Header(key string) (string, bool) { return r.headers.Get(key) }

// Fields returns the headers in wire order.
func (r *Response) Fields() []HeaderField { return r.headers.Fields() }

// SetBody sets the body bytes. An empty non-nil body is valid.
func (r *Response) SetBody(body []byte) { r.body = body }

// Body returns the body bytes, nil until set.
func (r *Response) Body() []byte { return r.body }

// StatusLine renders the first response line without its terminator.
func (r *Response) StatusLine() string {
	return r.version + " " + strconv.Itoa(r.code) + " " + r.reason
}

// AddDefaultHeaders injects the mandatory Date, Server, Connection and
// Content-Length headers immediately before serialization. Keys already
// present are overwritten, not duplicated. It fails when the body has not
// been set, since Content-Length cannot be computed from a nil body.
func (r *Response) AddDefaultHeaders(serverName string) error {
	if r.body == nil {
		return errors.WithStack(api.ErrBodyUnset)
	}
	r.headers.Set("Date", time.Now().UTC().Format(httpTimeFormat))
	r.headers.Set("Server", serverName)
	r.headers.Set("Connection", "close")
	r.headers.Set("Content-Length", strconv.Itoa(len(r.body)))
	return nil
}
