// Package fasta parses FASTA-framed sequence text into seq.Records: a '>'
// header line, then one or more sequence lines concatenated until the next
// header or end of input.
package fasta

import (
	"bytes"
	"io"

	"seqkmer/internal/lineio"
	"seqkmer/seq"
)

// Reader parses FASTA records from one byte source.
type Reader struct {
	lr        *lineio.Reader
	source    string
	fileIndex int

	pending     seq.Header // header of the record being assembled
	havePending bool
	reads       int
	done        bool
}

// NewReader returns a FASTA reader over r. source is used in error messages
// and may be empty; fileIndex is the caller-assigned provenance tag.
func NewReader(r io.Reader, source string, fileIndex int) *Reader {
	return &Reader{lr: lineio.NewReader(r), source: source, fileIndex: fileIndex}
}

// ReadRecord returns the next record, or io.EOF after the last one. The
// record's buffers are freshly allocated and never alias reader internals.
func (r *Reader) ReadRecord() (*seq.Record, error) {
	if r.done {
		return nil, io.EOF
	}

	if !r.havePending {
		hdr, err := r.nextHeader()
		if err != nil {
			return nil, err
		}
		r.pending = hdr
		r.havePending = true
	}

	body := make([]byte, 0, 1<<10)
	for {
		line, err := r.lr.ReadLine()
		if err == io.EOF {
			r.done = true
			break
		}
		if err != nil {
			return nil, err
		}
		if lineio.IsBlank(line) {
			continue
		}
		switch line[0] {
		case '>':
			rec := r.emit(body)
			r.pending = r.parseHeader(line)
			r.havePending = true
			return rec, nil
		case '@', '+':
			return nil, &seq.FormatError{
				Source: r.source,
				Line:   r.lr.Line(),
				Msg:    "FASTQ framing inside a FASTA source",
			}
		}
		body = append(body, bytes.TrimSpace(line)...)
	}
	return r.emit(body), nil
}

// nextHeader skips blank lines and consumes the next '>' header line.
func (r *Reader) nextHeader() (seq.Header, error) {
	for {
		line, err := r.lr.ReadLine()
		if err == io.EOF {
			r.done = true
			return seq.Header{}, io.EOF
		}
		if err != nil {
			return seq.Header{}, err
		}
		if lineio.IsBlank(line) {
			continue
		}
		if line[0] != '>' {
			return seq.Header{}, &seq.FormatError{
				Source: r.source,
				Line:   r.lr.Line(),
				Msg:    "expected '>' header line",
			}
		}
		return r.parseHeader(line), nil
	}
}

func (r *Reader) parseHeader(line []byte) seq.Header {
	r.reads++
	id, comment := splitHeader(line[1:])
	return seq.Header{
		ID:         id,
		Comment:    comment,
		FileIndex:  r.fileIndex,
		ReadsIndex: r.reads,
		Format:     seq.FormatFasta,
	}
}

func (r *Reader) emit(body []byte) *seq.Record {
	hdr := r.pending
	r.havePending = false
	return &seq.Record{
		Header: hdr,
		Body:   seq.Body{R1: seq.Read{Seq: body}},
	}
}

// splitHeader splits a header payload into id (token up to the first
// whitespace) and trailing comment.
func splitHeader(hdr []byte) (id, comment string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
