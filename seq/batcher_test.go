package seq

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, bases string) Record {
	return Record{
		Header: Header{ID: id},
		Body:   Body{R1: Read{Seq: []byte(bases)}},
	}
}

func TestBatcherRecordLimit(t *testing.T) {
	b := NewBatcher(4, 0)

	var batches []Batch
	for i := 0; i < 10; i++ {
		if b.Add(rec(fmt.Sprintf("r%d", i), "ACGT")) {
			batches = append(batches, b.Flush())
		}
	}
	if final := b.Flush(); final != nil {
		batches = append(batches, final)
	}

	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 4)
	assert.Len(t, batches[2], 2)

	// Order preserved across batch boundaries.
	i := 0
	for _, batch := range batches {
		for _, r := range batch {
			assert.Equal(t, fmt.Sprintf("r%d", i), r.Header.ID)
			i++
		}
	}
}

func TestBatcherBaseLimit(t *testing.T) {
	b := NewBatcher(100, 8)

	full := b.Add(rec("a", "ACGT"))
	assert.False(t, full)
	full = b.Add(rec("b", "ACGT"))
	assert.True(t, full, "8 bases should trip the aggregate limit")
	assert.Len(t, b.Flush(), 2)
}

func TestBatcherPairedBaseCount(t *testing.T) {
	b := NewBatcher(100, 8)
	r := rec("p", "ACGT")
	r.Body.R2 = &Read{Seq: []byte("TTTT")}

	assert.True(t, b.Add(r), "paired mates should count both bodies")
}

func TestBatcherFlushEmpty(t *testing.T) {
	b := NewBatcher(4, 0)
	assert.Nil(t, b.Flush())
	b.Add(rec("x", "A"))
	assert.Len(t, b.Flush(), 1)
	assert.Nil(t, b.Flush(), "second flush starts from an empty batch")
}
