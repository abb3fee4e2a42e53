// Package server implements the single-threaded readiness-polling core:
// one goroutine drives PollOnce, which accepts new connections and pumps
// readable ones through their session state machines. There is no internal
// locking because there is no concurrent mutation; all state is touched
// only from within a PollOnce invocation.
package server

import (
	"log"
	"os"

	"github.com/eapache/queue"
	"github.com/pkg/errors"

	"github.com/nioserve/nioserve/control"
	"github.com/nioserve/nioserve/internal/netio"
	"github.com/nioserve/nioserve/protocol"
	"github.com/nioserve/nioserve/reactor"
)

// maxEvents bounds how many ready descriptors one poll can report.
const maxEvents = 128

// Server owns the listening socket and the readiness primitive. The caller
// drives it by invoking PollOnce repeatedly; between invocations no I/O
// happens and no timers fire.
type Server struct {
	cfg     *Config
	handler Handler
	logger  *log.Logger

	ln *netio.Listener
	rc reactor.EventReactor

	// conns maps registered descriptors to their accepted sockets; sessions
	// holds the lazily created session per descriptor. Both are lookup
	// tables, not ownership: each session closes itself.
	conns    map[int]*netio.Conn
	sessions map[int]*Session

	ready  *queue.Queue // ready-set staging, drained exactly once per poll
	events []reactor.Event
	stats  control.Stats

	running bool
	closed  bool
}

// Option customizes server construction.
type Option func(*Server)

// WithReactor substitutes the readiness primitive, mainly for tests.
func WithReactor(r reactor.EventReactor) Option {
	return func(s *Server) { s.rc = r }
}

// WithLogger redirects the server's error reports.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New binds the listening socket, sets it non-blocking and registers it
// with the readiness primitive. Construction fails if the address cannot
// be bound.
func New(cfg *Config, handler Handler, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if handler == nil {
		return nil, errors.New("nil handler")
	}
	s := &Server{
		cfg:      cfg,
		handler:  handler,
		logger:   log.New(os.Stderr, "", log.LstdFlags),
		conns:    make(map[int]*netio.Conn),
		sessions: make(map[int]*Session),
		ready:    queue.New(),
		events:   make([]reactor.Event, maxEvents),
	}
	for _, o := range opts {
		o(s)
	}

	ln, err := netio.Listen(cfg.ListenAddr, cfg.Backlog)
	if err != nil {
		return nil, errors.Wrap(err, "bind")
	}
	s.ln = ln

	if s.rc == nil {
		rc, err := reactor.New()
		if err != nil {
			ln.Close()
			return nil, errors.Wrap(err, "reactor")
		}
		s.rc = rc
	}
	if err := s.rc.Register(ln.Fd()); err != nil {
		s.rc.Close()
		ln.Close()
		return nil, errors.Wrap(err, "register listener")
	}

	s.running = true
	return s, nil
}

// Addr returns the bound listen address, with the actual port when an
// ephemeral one was requested.
func (s *Server) Addr() string { return s.ln.Addr() }

// Running reports whether the server still polls.
func (s *Server) Running() bool { return s.running }

// Stats returns the server's run counters.
func (s *Server) Stats() *control.Stats { return &s.stats }

// PollOnce polls the readiness primitive without blocking and processes
// every ready descriptor exactly once. Per-connection failures are logged
// and isolated to their session; a failure of the primitive itself shuts
// the server down and is returned to the caller. A server that is not
// running does nothing.
func (s *Server) PollOnce() error {
	if !s.running {
		return nil
	}
	n, err := s.rc.PollNow(s.events)
	if err != nil {
		s.Shutdown()
		return errors.Wrap(err, "readiness poll")
	}
	for i := 0; i < n; i++ {
		s.ready.Add(s.events[i])
	}
	for s.ready.Length() > 0 {
		ev := s.ready.Remove().(reactor.Event)
		s.dispatch(ev.Fd)
	}
	return nil
}

// dispatch routes one ready descriptor: the listener accepts, a connection
// is pumped, anything no longer registered is skipped as stale.
func (s *Server) dispatch(fd int) {
	if fd == s.ln.Fd() {
		s.acceptOne()
		return
	}
	conn, ok := s.conns[fd]
	if !ok {
		return // stale registration, dropped earlier in this drain
	}
	sess := s.sessions[fd]
	if sess == nil {
		sess = NewSession(conn, s.cfg.BufferSize, s.cfg.ServerName)
		s.sessions[fd] = sess
	}
	if err := s.pump(sess); err != nil {
		s.reportClientError(fd, err)
		s.stats.ConnErrors.Add(1)
		sess.fail()
		s.forget(fd)
	}
}

// acceptOne takes a single pending connection, already non-blocking, and
// registers it for read readiness with no session attached yet.
func (s *Server) acceptOne() {
	conn, err := s.ln.Accept()
	if err != nil {
		s.reportClientError(s.ln.Fd(), err)
		return
	}
	if conn == nil {
		return // readiness raced with nothing pending
	}
	if err := s.rc.Register(conn.Fd()); err != nil {
		s.reportClientError(conn.Fd(), err)
		conn.Close()
		return
	}
	s.conns[conn.Fd()] = conn
	s.stats.Accepted.Add(1)
}

// pump runs one read cycle of the session state machine: fill the buffer,
// drain complete lines, and on the blank line build the request, invoke
// the handler and send its response. A panic in the handler is contained
// like any other per-connection failure.
func (s *Server) pump(sess *Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("handler panic: %v", r)
		}
	}()

	if err := sess.ReadData(); err != nil {
		return err
	}
	for {
		line, ok := sess.ReadLine()
		if !ok {
			return nil
		}
		if line != "" {
			continue
		}
		// Blank line: the request head is complete.
		sess.state = StateDispatching
		req, err := protocol.ParseRequest(sess.Raw())
		if err != nil {
			return err
		}
		resp, err := s.handler.Handle(sess, req)
		if err != nil {
			return errors.Wrap(err, "handler")
		}
		if err := sess.SendResponse(resp); err != nil {
			return err
		}
		sess.Close()
		s.forget(sess.Fd())
		s.stats.Served.Add(1)
		return nil
	}
}

// forget drops the lookup entries and readiness registration for fd. The
// session has already closed its socket.
func (s *Server) forget(fd int) {
	s.rc.Unregister(fd)
	delete(s.conns, fd)
	delete(s.sessions, fd)
}

// reportClientError logs an isolated per-connection failure. The debug flag
// switches between the full stack trace and a compact one-liner.
func (s *Server) reportClientError(fd int, err error) {
	if s.cfg.Debug {
		s.logger.Printf("error handling client fd=%d: %+v", fd, err)
		return
	}
	s.logger.Printf("error handling client fd=%d: %v", fd, err)
}

// Shutdown stops the server: no further I/O is performed and the readiness
// primitive and listening socket are released exactly once. Errors from
// releasing are swallowed; calling Shutdown again is a no-op.
func (s *Server) Shutdown() {
	s.running = false
	if s.closed {
		return
	}
	s.closed = true
	s.rc.Close()
	s.ln.Close()
}
