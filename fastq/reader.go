// Package fastq parses FASTQ-framed sequence text (strict 4-line records)
// into seq.Records, either from one source or from two paired-end sources
// consumed in lockstep.
package fastq

import (
	"bytes"
	"fmt"
	"io"

	"seqkmer/internal/lineio"
	"seqkmer/seq"
)

// Config controls quality interpretation.
type Config struct {
	// Encoding maps quality characters to scores. QualityNone passes the
	// quality string through untouched.
	Encoding seq.QualityEncoding
	// MinQuality, when positive, masks bases whose score falls below it to
	// 'N' so the k-mer encoder skips them. Requires an Encoding.
	MinQuality int
}

func (c Config) validate() error {
	if c.MinQuality > 0 && c.Encoding == seq.QualityNone {
		return fmt.Errorf("fastq: MinQuality %d requires a quality encoding", c.MinQuality)
	}
	return nil
}

type source struct {
	lr   *lineio.Reader
	name string
}

// Reader parses FASTQ records from one source, or from two sources in
// lockstep (one record from each per call).
type Reader struct {
	cfg       Config
	fileIndex int
	r1        *source
	r2        *source // nil in single mode

	reads int
	done  bool
}

// NewReader returns a single-source FASTQ reader. source is used in error
// messages and may be empty.
func NewReader(r io.Reader, source string, fileIndex int, cfg Config) (*Reader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Reader{
		cfg:       cfg,
		fileIndex: fileIndex,
		r1:        newSource(r, source),
	}, nil
}

// NewPairedReader returns a reader consuming two mate files in lockstep.
// Record i of the first source pairs with record i of the second; if one
// source runs out before the other, ReadRecord fails with seq.ErrDesync.
func NewPairedReader(r1, r2 io.Reader, source1, source2 string, fileIndex int, cfg Config) (*Reader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Reader{
		cfg:       cfg,
		fileIndex: fileIndex,
		r1:        newSource(r1, source1),
		r2:        newSource(r2, source2),
	}, nil
}

func newSource(r io.Reader, name string) *source {
	return &source{lr: lineio.NewReader(r), name: name}
}

// ReadRecord returns the next record (one mate pair in paired mode), or
// io.EOF after the last one.
func (r *Reader) ReadRecord() (*seq.Record, error) {
	if r.done {
		return nil, io.EOF
	}

	p1, err := r.readOne(r.r1)
	if err != nil {
		return nil, err
	}
	if r.r2 == nil {
		if p1 == nil {
			r.done = true
			return nil, io.EOF
		}
		return r.emit(p1, nil), nil
	}

	p2, err := r.readOne(r.r2)
	if err != nil {
		return nil, err
	}
	switch {
	case p1 == nil && p2 == nil:
		r.done = true
		return nil, io.EOF
	case p1 == nil || p2 == nil:
		exhausted, ahead := r.r1.name, r.r2.name
		if p1 != nil {
			exhausted, ahead = r.r2.name, r.r1.name
		}
		return nil, fmt.Errorf("record %d: %s exhausted before %s: %w",
			r.reads+1, exhausted, ahead, seq.ErrDesync)
	}
	return r.emit(p1, p2), nil
}

type parsed struct {
	id, comment string
	seq, qual   []byte
}

// readOne consumes one 4-line record from s. A nil result with nil error
// means clean end of input.
func (r *Reader) readOne(s *source) (*parsed, error) {
	// Header; blank lines between records are tolerated.
	var hdr []byte
	for {
		line, err := s.lr.ReadLine()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if lineio.IsBlank(line) {
			continue
		}
		hdr = line
		break
	}
	if hdr[0] != '@' {
		return nil, &seq.FormatError{Source: s.name, Line: s.lr.Line(), Msg: "expected '@' header line"}
	}
	id, comment := splitHeader(hdr[1:])

	sq, err := r.recordLine(s, id)
	if err != nil {
		return nil, err
	}
	sq = append([]byte(nil), bytes.TrimSpace(sq)...)

	sep, err := r.recordLine(s, id)
	if err != nil {
		return nil, err
	}
	if len(sep) == 0 || sep[0] != '+' {
		return nil, &seq.FormatError{Source: s.name, Line: s.lr.Line(), Msg: "expected '+' separator line"}
	}

	qual, err := r.recordLine(s, id)
	if err != nil {
		return nil, err
	}
	qual = append([]byte(nil), bytes.TrimSpace(qual)...)
	if len(qual) != len(sq) {
		return nil, &seq.FormatError{
			Source: s.name,
			Line:   s.lr.Line(),
			Msg:    fmt.Sprintf("quality length %d != sequence length %d for %q", len(qual), len(sq), id),
		}
	}

	r.mask(sq, qual)
	return &parsed{id: trimPairInfo(id), comment: comment, seq: sq, qual: qual}, nil
}

// recordLine reads one line inside a record; end of input here means the
// record was cut off.
func (r *Reader) recordLine(s *source, id string) ([]byte, error) {
	line, err := s.lr.ReadLine()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: record %q cut off at line %d: %w",
			s.name, id, s.lr.Line(), seq.ErrTruncatedRecord)
	}
	return line, err
}

// mask overwrites bases scoring below MinQuality with 'N'.
func (r *Reader) mask(sq, qual []byte) {
	if r.cfg.MinQuality <= 0 {
		return
	}
	off := int(r.cfg.Encoding.Offset())
	for i, q := range qual {
		if int(q)-off < r.cfg.MinQuality {
			sq[i] = 'N'
		}
	}
}

func (r *Reader) emit(p1, p2 *parsed) *seq.Record {
	r.reads++
	rec := &seq.Record{
		Header: seq.Header{
			ID:         p1.id,
			Comment:    p1.comment,
			FileIndex:  r.fileIndex,
			ReadsIndex: r.reads,
			Format:     seq.FormatFastq,
		},
		Body:    seq.Body{R1: seq.Read{Seq: p1.seq, Qual: p1.qual}},
		Quality: r.cfg.Encoding,
	}
	if p2 != nil {
		rec.Body.R2 = &seq.Read{Seq: p2.seq, Qual: p2.qual}
	}
	return rec
}

func splitHeader(hdr []byte) (id, comment string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}

// trimPairInfo strips a trailing "/1" or "/2" mate suffix so both mates of a
// pair share one id.
func trimPairInfo(id string) string {
	if len(id) <= 2 {
		return id
	}
	if id[len(id)-2] == '/' && (id[len(id)-1] == '1' || id[len(id)-1] == '2') {
		return id[:len(id)-2]
	}
	return id
}
