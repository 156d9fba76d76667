// Package kmer turns sequence bodies into canonical 2-bit packed k-mers.
//
// Bases pack two bits each (A=0, C=1, G=2, T=3) into a uint64, so k is
// capped at 31. A scanner slides one base at a time keeping two rolling
// accumulators, forward and reverse complement, which makes canonicalization
// O(1) per position. Ambiguous bases cannot be encoded: they reset the
// window, and the scanner resumes once k unambiguous bases have accumulated
// again. Runs shorter than k therefore yield nothing, which is policy, not
// an error.
package kmer

import (
	"errors"
	"fmt"
)

const (
	// BitsPerBase is the packed width of one base.
	BitsPerBase = 2
	// MaxK is the widest window a 64-bit word can hold.
	MaxK = 31
)

// ErrInvalidK is returned for a window width outside [1, MaxK].
var ErrInvalidK = errors.New("k out of range")

// Kmer is a 2-bit packed encoding of up to MaxK bases; the first base of the
// window occupies the highest used bits.
type Kmer uint64

const invalidBase = 0xFF

var baseValues [256]byte

func init() {
	for i := range baseValues {
		baseValues[i] = invalidBase
	}
	baseValues['A'], baseValues['a'] = 0, 0
	baseValues['C'], baseValues['c'] = 1, 1
	baseValues['G'], baseValues['g'] = 2, 2
	baseValues['T'], baseValues['t'] = 3, 3
}

// Encoder holds a validated window width. Construct once, scan many
// sequences; scanning is a pure function of the input, so one Encoder may be
// shared across goroutines.
type Encoder struct {
	k     int
	mask  uint64
	shift uint
}

// New returns an Encoder for width k, or ErrInvalidK before any sequence is
// touched.
func New(k int) (*Encoder, error) {
	if k < 1 || k > MaxK {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidK, k, MaxK)
	}
	return &Encoder{
		k:     k,
		mask:  (uint64(1) << (BitsPerBase * uint(k))) - 1,
		shift: BitsPerBase * uint(k-1),
	}, nil
}

// K reports the window width.
func (e *Encoder) K() int { return e.k }

// Scan returns a fresh Scanner over s. The scanner holds no state beyond the
// current call, so extraction may be re-run on the same body at any time.
func (e *Encoder) Scan(s []byte) *Scanner {
	return &Scanner{enc: e, seq: s}
}

// Scanner walks one sequence body and yields one canonical k-mer per valid
// window position, bufio.Scanner style:
//
//	sc := enc.Scan(body)
//	for sc.Next() {
//		use(sc.Pos(), sc.Kmer())
//	}
//
// A sequence of length L yields L-k+1 k-mers when every base is unambiguous,
// and zero (not an error) when L < k.
type Scanner struct {
	enc *Encoder
	seq []byte

	i    int // raw byte cursor
	base int // base coordinate: counts every byte except line terminators
	fill int // unambiguous bases accumulated toward a full window

	fwd uint64
	rev uint64

	cur Kmer
	pos int
}

// Next advances to the next window position, skipping ambiguous-base runs.
func (s *Scanner) Next() bool {
	e := s.enc
	for s.i < len(s.seq) {
		c := s.seq[s.i]
		s.i++
		if c == '\n' || c == '\r' {
			continue
		}
		s.base++
		v := baseValues[c]
		if v == invalidBase {
			s.fill = 0
			s.fwd = 0
			s.rev = 0
			continue
		}
		s.fwd = ((s.fwd << BitsPerBase) | uint64(v)) & e.mask
		s.rev = (s.rev >> BitsPerBase) | (uint64(3-v) << e.shift)
		if s.fill < e.k {
			s.fill++
		}
		if s.fill == e.k {
			// Canonical form; a palindromic window has fwd == rev, so the
			// forward encoding wins ties by construction.
			if s.rev < s.fwd {
				s.cur = Kmer(s.rev)
			} else {
				s.cur = Kmer(s.fwd)
			}
			s.pos = s.base - e.k
			return true
		}
	}
	return false
}

// Kmer returns the canonical k-mer at the current position.
func (s *Scanner) Kmer() Kmer { return s.cur }

// Forward returns the forward-strand encoding at the current position.
func (s *Scanner) Forward() Kmer { return Kmer(s.fwd) }

// Reverse returns the reverse-complement encoding at the current position.
func (s *Scanner) Reverse() Kmer { return Kmer(s.rev) }

// Pos returns the 0-based offset of the window start in base coordinates
// (line terminators excluded, ambiguous bases included).
func (s *Scanner) Pos() int { return s.pos }

// Encode packs s into a Kmer. All bases must be unambiguous and
// 1 <= len(s) <= MaxK.
func Encode(s []byte) (Kmer, error) {
	if len(s) < 1 || len(s) > MaxK {
		return 0, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidK, len(s), MaxK)
	}
	var v uint64
	for i, c := range s {
		b := baseValues[c]
		if b == invalidBase {
			return 0, fmt.Errorf("ambiguous base %q at %d", c, i)
		}
		v = (v << BitsPerBase) | uint64(b)
	}
	return Kmer(v), nil
}

// Decode unpacks km back into bases.
func Decode(km Kmer, k int) string {
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = "ACGT"[km&3]
		km >>= BitsPerBase
	}
	return string(out)
}

// RevComp returns the packed reverse complement of a width-k encoding.
func RevComp(km Kmer, k int) Kmer {
	var out uint64
	v := uint64(km)
	for i := 0; i < k; i++ {
		out = (out << BitsPerBase) | (3 - (v & 3))
		v >>= BitsPerBase
	}
	return Kmer(out)
}

// Canonical returns the numerically smaller of km and its reverse
// complement.
func Canonical(km Kmer, k int) Kmer {
	if rc := RevComp(km, k); rc < km {
		return rc
	}
	return km
}
