package server

import (
	"bytes"

	"github.com/nioserve/nioserve/internal/netio"
	"github.com/nioserve/nioserve/protocol"
)

// State tracks a session's progress through its single exchange.
type State uint8

const (
	// StateAwaitingData: created, nothing read yet.
	StateAwaitingData State = iota
	// StateAwaitingCompletion: bytes read, blank line not yet seen.
	StateAwaitingCompletion
	// StateDispatching: request built, handler running or response sending.
	StateDispatching
	// StateClosed: socket released after answering one request.
	StateClosed
	// StateFailed: dropped by an error before completing the exchange.
	StateFailed
)

// Session owns one accepted connection: its socket, its line buffer and the
// accumulator of raw request text. It handles exactly one request; once the
// blank-line terminator has been answered the session is closed for good.
type Session struct {
	conn       *netio.Conn
	lines      *protocol.LineBuffer
	raw        bytes.Buffer
	state      State
	serverName string
}

// NewSession wraps an accepted connection.
func NewSession(conn *netio.Conn, bufSize int, serverName string) *Session {
	return &Session{
		conn:       conn,
		lines:      protocol.NewLineBuffer(bufSize),
		state:      StateAwaitingData,
		serverName: serverName,
	}
}

// Fd returns the underlying descriptor.
func (s *Session) Fd() int { return s.conn.Fd() }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// ReadData pulls whatever the socket currently offers into the line buffer.
// Any error means the owner must close this session and only this session.
func (s *Session) ReadData() error {
	if err := s.lines.Fill(s.conn); err != nil {
		s.state = StateFailed
		return err
	}
	if s.state == StateAwaitingData {
		s.state = StateAwaitingCompletion
	}
	return nil
}

// ReadLine extracts the next complete line from the buffer. Each extracted
// line is appended, with its terminator restored, to the raw accumulator
// that request parsing later consumes. ok is false when no complete line
// remains buffered.
func (s *Session) ReadLine() (line string, ok bool) {
	line, ok = s.lines.NextLine()
	if ok {
		s.raw.WriteString(line)
		s.raw.WriteString("\r\n")
	}
	return line, ok
}

// Raw returns the exact byte image of every line read so far.
func (s *Session) Raw() []byte { return s.raw.Bytes() }

// SendResponse injects the default headers and writes the status line, each
// header, a blank line and the body as independent best-effort writes.
// Write failures are swallowed: the connection is being closed regardless,
// so delivery is attempted once with no guarantee. The only reported error
// is a response whose body was never set.
func (s *Session) SendResponse(r *protocol.Response) error {
	if err := r.AddDefaultHeaders(s.serverName); err != nil {
		return err
	}
	s.writeLine(r.StatusLine())
	for _, f := range r.Fields() {
		s.writeLine(f.Key + ": " + f.Value)
	}
	s.writeLine("")
	s.conn.Write(r.Body())
	return nil
}

func (s *Session) writeLine(line string) {
	s.conn.Write(append([]byte(line), '\r', '\n'))
}

// Close releases the socket. Idempotent; close errors are discarded. The
// state becomes Closed unless the session already failed.
func (s *Session) Close() {
	s.conn.Close()
	if s.state != StateFailed {
		s.state = StateClosed
	}
}

// fail marks the session failed and releases the socket.
func (s *Session) fail() {
	s.state = StateFailed
	s.conn.Close()
}
