package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqkmer/seq"
)

func mustEncoder(t *testing.T, k int) *Encoder {
	t.Helper()
	e, err := New(k)
	require.NoError(t, err)
	return e
}

// collect runs a fresh scan and returns (positions, canonical kmers).
func collect(e *Encoder, s string) ([]int, []Kmer) {
	var pos []int
	var kms []Kmer
	sc := e.Scan([]byte(s))
	for sc.Next() {
		pos = append(pos, sc.Pos())
		kms = append(kms, sc.Kmer())
	}
	return pos, kms
}

func TestNewValidatesK(t *testing.T) {
	for _, k := range []int{0, -1, 32, 100} {
		_, err := New(k)
		assert.ErrorIs(t, err, ErrInvalidK, "k=%d", k)
	}
	for _, k := range []int{1, 15, 31} {
		_, err := New(k)
		assert.NoError(t, err, "k=%d", k)
	}
}

func TestWindowCount(t *testing.T) {
	e := mustEncoder(t, 4)

	// L - k + 1 windows for clean input.
	pos, _ := collect(e, "ACGTACGTAC")
	assert.Len(t, pos, 7)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, pos)

	// L < k yields zero k-mers, not an error.
	pos, _ = collect(e, "ACG")
	assert.Empty(t, pos)

	// L == k yields exactly one.
	pos, _ = collect(e, "ACGT")
	assert.Len(t, pos, 1)
}

func TestCanonicalMatchesBruteForce(t *testing.T) {
	const s = "GATTACAGATTACACCTGGA"
	for _, k := range []int{1, 2, 5, 11} {
		e := mustEncoder(t, k)
		pos, kms := collect(e, s)
		require.Len(t, kms, len(s)-k+1, "k=%d", k)
		for i, km := range kms {
			sub := s[pos[i] : pos[i]+k]
			want, err := Encode([]byte(sub))
			require.NoError(t, err)
			assert.Equal(t, Canonical(want, k), km, "k=%d window %q", k, sub)
		}
	}
}

func TestCanonicalStrandSymmetry(t *testing.T) {
	const s = "GATTACACCTGGAACGTT"
	const k = 5
	e := mustEncoder(t, k)

	rc := string(seq.RevComp([]byte(s)))
	_, fwd := collect(e, s)
	_, rev := collect(e, rc)
	require.Len(t, rev, len(fwd))

	// Window i of s mirrors window len-1-i of its reverse complement.
	for i, km := range fwd {
		assert.Equal(t, km, rev[len(rev)-1-i], "window %d", i)
	}
}

func TestPalindromeTieBreak(t *testing.T) {
	e := mustEncoder(t, 4)
	sc := e.Scan([]byte("ACGT")) // self-complementary
	require.True(t, sc.Next())
	assert.Equal(t, sc.Forward(), sc.Kmer())
	assert.Equal(t, sc.Forward(), sc.Reverse())
}

func TestAmbiguousBaseSkip(t *testing.T) {
	e := mustEncoder(t, 4)

	pos, kms := collect(e, "ACGTNACGT")
	require.Len(t, kms, 2, "no window may span the N")
	assert.Equal(t, []int{0, 5}, pos)

	want, err := Encode([]byte("ACGT"))
	require.NoError(t, err)
	assert.Equal(t, Canonical(want, 4), kms[0])
	assert.Equal(t, kms[0], kms[1])
}

func TestAmbiguousRunBoundaries(t *testing.T) {
	e := mustEncoder(t, 4)

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"k-1 valid after N", "NACG", 0},
		{"k valid after N", "NACGT", 1},
		{"k+1 valid after N", "NACGTA", 2},
		{"k-1 valid before N", "ACGN", 0},
		{"k valid before N", "ACGTN", 1},
		{"k+1 valid before N", "ACGTAN", 2},
		{"all ambiguous", "NNNN", 0},
	}
	for _, tt := range tests {
		_, kms := collect(e, tt.in)
		assert.Len(t, kms, tt.want, tt.name)
	}
}

func TestScannerSkipsLineTerminators(t *testing.T) {
	e := mustEncoder(t, 4)
	_, a := collect(e, "ACGTAC")
	_, b := collect(e, "ACG\nTAC")
	assert.Equal(t, a, b, "newlines must not reset the window")
}

func TestScanIsRestartable(t *testing.T) {
	e := mustEncoder(t, 3)
	body := []byte("ACGTACGT")
	_, first := collect(e, string(body))
	_, second := collect(e, string(body))
	assert.Equal(t, first, second)
}

func TestEncodeDecode(t *testing.T) {
	for _, s := range []string{"A", "ACGT", "GATTACA", "TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT"} {
		km, err := Encode([]byte(s))
		require.NoError(t, err)
		assert.Equal(t, s, Decode(km, len(s)))
	}

	_, err := Encode([]byte("ACNGT"))
	assert.Error(t, err)
	_, err = Encode([]byte(""))
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestRevCompPacked(t *testing.T) {
	km, err := Encode([]byte("AACG"))
	require.NoError(t, err)
	assert.Equal(t, "CGTT", Decode(RevComp(km, 4), 4))
	assert.Equal(t, km, RevComp(RevComp(km, 4), 4))
}
