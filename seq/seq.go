// Package seq holds the sequence data model shared by the FASTA/FASTQ
// parsers, the reader facade, and the k-mer encoder: headers, single or
// paired bodies, records, and bounded batches of records.
package seq

// Format identifies the framing of a sequence source.
type Format int

const (
	FormatUnknown Format = iota
	FormatFasta
	FormatFastq
)

func (f Format) String() string {
	switch f {
	case FormatFasta:
		return "fasta"
	case FormatFastq:
		return "fastq"
	default:
		return "unknown"
	}
}

// QualityEncoding names the mapping from FASTQ quality characters to scores.
type QualityEncoding int

const (
	// QualityNone means quality characters carry no interpreted score
	// (FASTA, or FASTQ whose qualities are passed through untouched).
	QualityNone QualityEncoding = iota
	// QualityPhred33 is Sanger/Illumina 1.8+ encoding (score = char - 33).
	QualityPhred33
	// QualityPhred64 is legacy Illumina encoding (score = char - 64).
	QualityPhred64
)

// Offset returns the ASCII offset subtracted from a quality character to
// obtain its score, or 0 when no encoding is configured.
func (q QualityEncoding) Offset() byte {
	switch q {
	case QualityPhred33:
		return 33
	case QualityPhred64:
		return 64
	default:
		return 0
	}
}

// Header is the parsed header line of a record. ID is the token up to the
// first whitespace; Comment is the remainder (possibly empty). FileIndex is
// the caller-assigned provenance tag of the source; ReadsIndex is the
// 1-based ordinal of the record within that source.
type Header struct {
	ID         string
	Comment    string
	FileIndex  int
	ReadsIndex int
	Format     Format
}

// Read is one mate: a base sequence and its optional quality string.
// If Qual is non-empty its length equals len(Seq).
type Read struct {
	Seq  []byte
	Qual []byte
}

// Body is a single read or a synchronized pair of mates.
type Body struct {
	R1 Read
	R2 *Read
}

// Paired reports whether the body carries a second mate.
func (b *Body) Paired() bool { return b.R2 != nil }

// Bases returns the total base count across mates.
func (b *Body) Bases() int {
	n := len(b.R1.Seq)
	if b.R2 != nil {
		n += len(b.R2.Seq)
	}
	return n
}

// Each calls fn for every mate in order.
func (b *Body) Each(fn func(r *Read)) {
	fn(&b.R1)
	if b.R2 != nil {
		fn(b.R2)
	}
}

// Record is one parsed sequence record. Records are created by a format
// parser, handed to the caller inside a Batch, and discarded after k-mer
// extraction; they never alias parser-internal buffers.
type Record struct {
	Header  Header
	Body    Body
	Quality QualityEncoding
}

// Batch is an ordered run of records; insertion order is file order.
// Ownership transfers to the caller when the reader yields it.
type Batch []Record
