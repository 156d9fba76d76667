// Package lineio is the byte-stream layer under the format parsers: a
// buffered line cursor with terminator stripping and line accounting.
package lineio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	bufSize = 64 * 1024
	// MaxLine caps a single input line; sequences stored one-per-line can
	// be very long, so the cap is generous.
	MaxLine = 64 * 1024 * 1024
)

// ErrLineTooLong is returned when a single line exceeds MaxLine bytes.
var ErrLineTooLong = errors.New("line exceeds maximum length")

// Reader is a pull-based cursor over lines of one underlying byte source.
type Reader struct {
	br   *bufio.Reader
	buf  []byte
	line int
}

// NewReader wraps r in a line cursor.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, bufSize)}
}

// ReadLine returns the next line with its terminator ("\n" or "\r\n")
// stripped, or io.EOF after the last line. The returned slice is reused by
// the next call; callers keeping the bytes must copy them.
func (r *Reader) ReadLine() ([]byte, error) {
	r.buf = r.buf[:0]
	for {
		frag, err := r.br.ReadSlice('\n')
		r.buf = append(r.buf, frag...)
		if err == nil {
			break
		}
		if err == bufio.ErrBufferFull {
			if len(r.buf) > MaxLine {
				return nil, fmt.Errorf("line %d: %w", r.line+1, ErrLineTooLong)
			}
			continue
		}
		if err == io.EOF {
			if len(r.buf) == 0 {
				return nil, io.EOF
			}
			break
		}
		return nil, fmt.Errorf("read line %d: %w", r.line+1, err)
	}
	r.line++
	b := r.buf
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b, nil
}

// Line reports the 1-based number of the last line returned by ReadLine.
func (r *Reader) Line() int { return r.line }

// IsBlank reports whether line is empty or whitespace-only.
func IsBlank(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}
