package fasta

import (
	"errors"
	"io"
	"strings"
	"testing"

	"seqkmer/seq"
)

func readAll(t *testing.T, input string) []*seq.Record {
	t.Helper()
	r := NewReader(strings.NewReader(input), "test.fa", 0)
	var recs []*seq.Record
	for {
		rec, err := r.ReadRecord()
		if err == io.EOF {
			return recs
		}
		if err != nil {
			t.Fatalf("ReadRecord: %v", err)
		}
		recs = append(recs, rec)
	}
}

func TestSingleRecord(t *testing.T) {
	recs := readAll(t, ">h1\nACGT\n")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Header.ID != "h1" {
		t.Errorf("id = %q, want h1", recs[0].Header.ID)
	}
	if got := string(recs[0].Body.R1.Seq); got != "ACGT" {
		t.Errorf("seq = %q, want ACGT", got)
	}
	if recs[0].Header.Format != seq.FormatFasta {
		t.Errorf("format = %v, want fasta", recs[0].Header.Format)
	}
}

func TestMultilineBodyAndComment(t *testing.T) {
	recs := readAll(t, ">s1 some description\nACGT\nacgt\n\n>s2\nTTTT")
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Header.ID != "s1" || recs[0].Header.Comment != "some description" {
		t.Errorf("header = %+v", recs[0].Header)
	}
	if got := string(recs[0].Body.R1.Seq); got != "ACGTacgt" {
		t.Errorf("seq lines not concatenated: %q", got)
	}
	if got := string(recs[1].Body.R1.Seq); got != "TTTT" {
		t.Errorf("record without trailing newline: %q", got)
	}
}

func TestReadsIndexIncrements(t *testing.T) {
	recs := readAll(t, ">a\nA\n>b\nC\n>c\nG\n")
	for i, r := range recs {
		if r.Header.ReadsIndex != i+1 {
			t.Errorf("record %d ReadsIndex = %d, want %d", i, r.Header.ReadsIndex, i+1)
		}
	}
}

func TestEmptyInputYieldsZeroRecords(t *testing.T) {
	if recs := readAll(t, ""); len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
	if recs := readAll(t, "\n  \n\t\n"); len(recs) != 0 {
		t.Fatalf("whitespace-only input: expected no records, got %d", len(recs))
	}
}

func TestMixedFormatRejected(t *testing.T) {
	r := NewReader(strings.NewReader(">s1\nACGT\n@oops\nACGT\n"), "mix.fa", 0)
	_, err := r.ReadRecord()
	var fe *seq.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Line != 3 {
		t.Errorf("error line = %d, want 3", fe.Line)
	}
}

func TestLeadingGarbageRejected(t *testing.T) {
	r := NewReader(strings.NewReader("ACGT\n>s1\nACGT\n"), "bad.fa", 0)
	_, err := r.ReadRecord()
	var fe *seq.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestEOFIsSticky(t *testing.T) {
	r := NewReader(strings.NewReader(">a\nA\n"), "", 0)
	if _, err := r.ReadRecord(); err != nil {
		t.Fatalf("first read: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := r.ReadRecord(); err != io.EOF {
			t.Fatalf("read after end: %v, want io.EOF", err)
		}
	}
}
