package fastx

import (
	"bufio"
	"io"

	"seqkmer/seq"
)

// sniffFormat inspects the first non-whitespace byte of br without consuming
// anything: '>' is FASTA, '@' is FASTQ. io.EOF means the source is empty
// (zero records, not an error); any other byte is a format error. Once
// detected, the whole source is committed to that format.
func sniffFormat(br *bufio.Reader, source string) (seq.Format, error) {
	for n := 1; ; n *= 2 {
		buf, peekErr := br.Peek(n)
		for _, b := range buf {
			switch b {
			case ' ', '\t', '\n', '\r', '\v', '\f':
				continue
			case '>':
				return seq.FormatFasta, nil
			case '@':
				return seq.FormatFastq, nil
			default:
				return seq.FormatUnknown, &seq.FormatError{
					Source: source,
					Msg:    "unrecognized sequence file format",
				}
			}
		}
		if peekErr != nil {
			if peekErr == io.EOF {
				return seq.FormatUnknown, io.EOF
			}
			return seq.FormatUnknown, peekErr
		}
	}
}
