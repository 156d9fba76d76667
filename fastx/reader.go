// Package fastx is the public entry point for sequence ingestion: it opens
// one or two FASTA/FASTQ sources (plain or gzipped, "-" for stdin), commits
// each source to the format its first record announces, and yields bounded
// batches of seq.Records through a single pull call.
//
// The facade does no k-mer extraction itself; callers feed each yielded
// record's body to the kmer package. Batches are self-contained, so they may
// be fanned out to workers without synchronization.
package fastx

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"seqkmer/fasta"
	"seqkmer/fastq"
	"seqkmer/seq"
)

// Config collects construction-time parameters. All validation happens
// before any I/O.
type Config struct {
	// FileIndex is the caller-assigned provenance tag stamped on every
	// record's header.
	FileIndex int
	// BatchRecords / BatchBases bound each yielded batch (records and
	// aggregate bases; whichever limit trips first). Zero means default.
	BatchRecords int
	BatchBases   int
	// Quality interprets FASTQ quality characters; ignored for FASTA.
	Quality seq.QualityEncoding
	// MinQuality, when positive, masks FASTQ bases scoring below it to 'N'.
	// Requires Quality to be set.
	MinQuality int
}

func (c Config) fastqConfig() fastq.Config {
	return fastq.Config{Encoding: c.Quality, MinQuality: c.MinQuality}
}

func (c Config) validate() error {
	if c.MinQuality > 0 && c.Quality == seq.QualityNone {
		return fmt.Errorf("fastx: MinQuality %d requires a quality encoding", c.MinQuality)
	}
	return nil
}

// recordReader is implemented by the per-format parsers.
type recordReader interface {
	ReadRecord() (*seq.Record, error)
}

// Reader is the pull-based facade. It is a single-producer object: one
// goroutine pulls batches; the batches themselves may then be shared freely.
type Reader struct {
	rec     recordReader
	batcher *seq.Batcher
	closers []io.Closer

	err error // sticky terminal state (io.EOF included)
}

// Open builds a Reader from one path (FASTA or FASTQ) or two paths (paired
// FASTQ). Gzipped inputs are decompressed transparently; "-" reads stdin.
func Open(cfg Config, paths ...string) (*Reader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(paths) < 1 || len(paths) > 2 {
		return nil, fmt.Errorf("fastx: want 1 or 2 paths, got %d", len(paths))
	}

	var closers []io.Closer
	brs := make([]*bufio.Reader, len(paths))
	for i, p := range paths {
		rc, err := openReader(p)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, err
		}
		closers = append(closers, rc)
		brs[i] = bufio.NewReader(rc)
	}

	r, err := assemble(cfg, paths, brs)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	r.closers = closers
	return r, nil
}

// NewReader builds a single-source Reader over an in-memory or
// pre-decompressed byte stream. name is used in error messages.
func NewReader(cfg Config, name string, r io.Reader) (*Reader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return assemble(cfg, []string{name}, []*bufio.Reader{bufio.NewReader(r)})
}

// NewPairedReader builds a paired FASTQ Reader over two byte streams.
func NewPairedReader(cfg Config, name1, name2 string, r1, r2 io.Reader) (*Reader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return assemble(cfg, []string{name1, name2},
		[]*bufio.Reader{bufio.NewReader(r1), bufio.NewReader(r2)})
}

// assemble sniffs formats and wires the matching parser. Formats are a
// closed set dispatched once here; the parsers never re-detect.
func assemble(cfg Config, names []string, brs []*bufio.Reader) (*Reader, error) {
	formats := make([]seq.Format, len(brs))
	allEmpty := true
	for i := range brs {
		f, err := sniffFormat(brs[i], names[i])
		if err == io.EOF {
			continue // empty source: zero records; FormatUnknown stands in
		}
		if err != nil {
			return nil, err
		}
		formats[i] = f
		allEmpty = false
	}

	r := &Reader{batcher: seq.NewBatcher(cfg.BatchRecords, cfg.BatchBases)}
	switch {
	case allEmpty:
		r.err = io.EOF
	case len(brs) == 1 && formats[0] == seq.FormatFasta:
		r.rec = fasta.NewReader(brs[0], names[0], cfg.FileIndex)
	case len(brs) == 1:
		fq, err := fastq.NewReader(brs[0], names[0], cfg.FileIndex, cfg.fastqConfig())
		if err != nil {
			return nil, err
		}
		r.rec = fq
	case formats[0] == seq.FormatFasta || formats[1] == seq.FormatFasta:
		return nil, &seq.FormatError{
			Source: names[0],
			Msg:    "paired inputs must both be FASTQ",
		}
	default:
		// Both FASTQ, or one FASTQ and one empty source; the empty side
		// surfaces as a desync on the first pull.
		fq, err := fastq.NewPairedReader(brs[0], brs[1], names[0], names[1], cfg.FileIndex, cfg.fastqConfig())
		if err != nil {
			return nil, err
		}
		r.rec = fq
	}
	return r, nil
}

// Next returns the next non-empty batch in file order. At end of input it
// returns the final partial batch (if any), then io.EOF. Both io.EOF and
// errors are terminal: every later call returns the same value without
// re-reading.
func (r *Reader) Next() (seq.Batch, error) {
	if r.err != nil {
		return nil, r.err
	}
	for {
		rec, err := r.rec.ReadRecord()
		if err == io.EOF {
			r.err = io.EOF
			if b := r.batcher.Flush(); b != nil {
				return b, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			r.err = err
			return nil, err
		}
		if r.batcher.Add(*rec) {
			return r.batcher.Flush(), nil
		}
	}
}

// Close releases the underlying sources. It is safe at any point, including
// mid-stream, and safe to call more than once.
func (r *Reader) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	r.closers = nil
	if r.err == nil {
		r.err = os.ErrClosed
	}
	return err
}
