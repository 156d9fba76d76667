package seq

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedRecord reports end-of-input in the middle of a record
	// (e.g. a FASTQ file cut off before its quality line).
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrDesync reports paired sources with differing record counts. It is
	// raised on the first pull that finds one source exhausted while the
	// other still has a record.
	ErrDesync = errors.New("paired inputs out of sync")
)

// FormatError reports malformed framing: an unrecognized leading byte, mixed
// formats within one source, or a quality/sequence length mismatch.
//
// Line is 1-based within the source; 0 means unknown.
type FormatError struct {
	Source string
	Line   int
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Source == "" {
		if e.Line > 0 {
			return fmt.Sprintf("format error at line %d: %s", e.Line, e.Msg)
		}
		return "format error: " + e.Msg
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: format error at line %d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: format error: %s", e.Source, e.Msg)
}
