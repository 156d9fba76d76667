package seq

const (
	// DefaultBatchRecords bounds a batch by record count.
	DefaultBatchRecords = 4096
	// DefaultBatchBases bounds a batch by aggregate base count; the value
	// mirrors the 16 MiB read buffer the original reader worked in.
	DefaultBatchBases = 16 << 20
)

// Batcher accumulates records into bounded batches, preserving arrival
// order. A batch is full when either the record limit or the aggregate base
// limit is reached, whichever trips first. Zero limits fall back to the
// defaults.
type Batcher struct {
	maxRecords int
	maxBases   int

	cur   Batch
	bases int
}

// NewBatcher returns a Batcher with the given limits.
func NewBatcher(maxRecords, maxBases int) *Batcher {
	if maxRecords <= 0 {
		maxRecords = DefaultBatchRecords
	}
	if maxBases <= 0 {
		maxBases = DefaultBatchBases
	}
	return &Batcher{maxRecords: maxRecords, maxBases: maxBases}
}

// Add appends rec to the current batch and reports whether the batch is now
// full and should be flushed.
func (b *Batcher) Add(rec Record) bool {
	b.cur = append(b.cur, rec)
	b.bases += rec.Body.Bases()
	return len(b.cur) >= b.maxRecords || b.bases >= b.maxBases
}

// Flush hands out the current batch (nil if empty) and starts a new one.
func (b *Batcher) Flush() Batch {
	if len(b.cur) == 0 {
		return nil
	}
	out := b.cur
	b.cur = nil
	b.bases = 0
	return out
}

// Len reports the number of records pending in the current batch.
func (b *Batcher) Len() int { return len(b.cur) }
