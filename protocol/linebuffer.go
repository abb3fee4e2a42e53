package protocol

import (
	"io"

	"github.com/pkg/errors"

	"github.com/nioserve/nioserve/api"
)

// DefaultBufferSize is the line buffer capacity used when none is configured.
const DefaultBufferSize = 2048

// LineBuffer accumulates bytes from repeated non-blocking reads and
// extracts complete CRLF-terminated lines from them. The persisted mark
// tracks the start of the current unterminated line, so bytes are never
// re-delivered and never lost across fills.
//
// The capacity is a hard bound on the total buffered request head: a line
// (or head) longer than the capacity fails the fill with ErrBufferFull
// rather than corrupting the stream.
type LineBuffer struct {
	buf  []byte
	end  int // bytes filled so far
	pos  int // scan cursor, mark <= pos <= end
	mark int // start of the current unterminated line
}

// NewLineBuffer allocates a buffer with the given capacity, or
// DefaultBufferSize when capacity is not positive.
func NewLineBuffer(capacity int) *LineBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &LineBuffer{buf: make([]byte, capacity)}
}

// Fill reads whatever src currently offers into the free tail of the
// buffer. A read of zero bytes with no error is a successful empty fill.
// End of stream reports api.ErrStreamClosed. A buffer with no free space
// reports api.ErrBufferFull.
func (b *LineBuffer) Fill(src io.Reader) error {
	if b.end == len(b.buf) {
		return errors.Wrapf(api.ErrBufferFull, "no complete line in %d bytes", b.end)
	}
	n, err := src.Read(b.buf[b.end:])
	b.end += n
	if err != nil && n == 0 {
		if err == io.EOF {
			return errors.WithStack(api.ErrStreamClosed)
		}
		return errors.Wrap(err, "fill")
	}
	return nil
}

// NextLine scans forward for a CRLF sequence. On finding one it returns the
// line content without the terminator, advances past it, and persists the
// new mark so subsequent fills and scans resume exactly there. When the
// buffered bytes hold no complete line it returns ("", false); already
// scanned bytes stay buffered and are not rescanned on the next call.
func (b *LineBuffer) NextLine() (string, bool) {
	var prev byte
	if b.pos > b.mark {
		prev = b.buf[b.pos-1]
	}
	for b.pos < b.end {
		c := b.buf[b.pos]
		b.pos++
		if c == '\n' && prev == '\r' {
			line := string(b.buf[b.mark : b.pos-2])
			b.mark = b.pos
			return line, true
		}
		prev = c
	}
	return "", false
}

// Buffered reports how many filled bytes have not yet formed a line.
func (b *LineBuffer) Buffered() int { return b.end - b.mark }
