// Package netio wraps the raw non-blocking TCP socket operations the
// server is built on: listener construction, accept, and per-descriptor
// read/write/close. Every descriptor it hands out is in non-blocking mode.
package netio
