package server

import "github.com/nioserve/nioserve/protocol"

// Handler turns a parsed request into a response. The server invokes it
// synchronously on the polling goroutine with no timeout: a slow handler
// stalls the whole server. That is the load-bearing constraint of the
// single-threaded design, not an oversight.
//
// The returned response must have its body set. Returning an error drops
// the connection without writing any response bytes; handlers that want an
// error status on the wire return a response carrying it instead.
type Handler interface {
	Handle(s *Session, req *protocol.Request) (*protocol.Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(s *Session, req *protocol.Request) (*protocol.Response, error)

// Handle calls f.
func (f HandlerFunc) Handle(s *Session, req *protocol.Request) (*protocol.Response, error) {
	return f(s, req)
}
