package kmer

import "fmt"

// DefaultToggleMask is XORed into candidate l-mers before window comparison
// to break the A-heavy bias of raw encodings.
const DefaultToggleMask = 0xe37e28c4271b5a2d

// MinimizerParams selects one minimizer per k-mer window: the smallest
// candidate l-mer (canonical, spaced-seed masked, toggle-mixed) among the
// K-L+1 l-mers the window contains.
type MinimizerParams struct {
	K int // outer window width, in bases
	L int // minimizer width, 1..MaxK, L <= K
	// SpacedSeedMask, when non-zero, is ANDed into each canonical l-mer
	// before comparison. Zero disables spaced seeding.
	SpacedSeedMask uint64
	// ToggleMask is XORed into candidates for comparison and removed again
	// before hashing. Zero is a valid (identity) mask.
	ToggleMask uint64
}

// WindowSize is the number of l-mers competing per k-mer position.
func (p MinimizerParams) WindowSize() int { return p.K - p.L + 1 }

// Minimizer is a validated minimizer scheme. Like Encoder, it is immutable
// after construction and safe to share.
type Minimizer struct {
	p   MinimizerParams
	enc *Encoder
}

// NewMinimizer validates p before any sequence is touched.
func NewMinimizer(p MinimizerParams) (*Minimizer, error) {
	enc, err := New(p.L)
	if err != nil {
		return nil, err
	}
	if p.K < p.L {
		return nil, fmt.Errorf("%w: K %d smaller than L %d", ErrInvalidK, p.K, p.L)
	}
	return &Minimizer{p: p, enc: enc}, nil
}

// Params returns the scheme parameters.
func (m *Minimizer) Params() MinimizerParams { return m.p }

// Scan returns a fresh scanner over s yielding one hashed minimizer per
// k-mer window position.
func (m *Minimizer) Scan(s []byte) *MinimizerScanner {
	return &MinimizerScanner{
		m:   m,
		sc:  m.enc.Scan(s),
		win: newWindow(m.p.WindowSize()),
	}
}

// MinimizerScanner slides the outer window across one sequence. Ambiguous
// bases reset both the l-mer cursor and the window, so runs shorter than K
// yield nothing.
type MinimizerScanner struct {
	m   *Minimizer
	sc  *Scanner
	win *window

	cur     uint64
	pos     int
	count   int
	lastPos int
}

// Next advances to the next k-mer window position.
func (s *MinimizerScanner) Next() bool {
	p := s.m.p
	for {
		if !s.sc.Next() {
			return false
		}
		if s.count > 0 && s.sc.Pos() != s.lastPos+1 {
			// The l-mer cursor skipped ahead over an ambiguous base; the
			// window must not span the gap.
			s.win.clear()
		}
		s.lastPos = s.sc.Pos()
		candidate := uint64(s.sc.Kmer()) // already canonical
		if p.SpacedSeedMask > 0 {
			candidate &= p.SpacedSeedMask
		}
		candidate ^= p.ToggleMask

		minVal, ok := s.win.push(candidate)
		s.count++
		if ok {
			s.cur = Fmix64(minVal ^ p.ToggleMask)
			s.pos = s.sc.base - p.K
			return true
		}
	}
}

// Minimizer returns the hashed minimizer at the current position.
func (s *MinimizerScanner) Minimizer() uint64 { return s.cur }

// Pos returns the 0-based offset of the k-mer window start in base
// coordinates.
func (s *MinimizerScanner) Pos() int { return s.pos }

type windowEntry struct {
	val uint64
	pos int
}

// window is a monotone deque holding candidate l-mers in increasing value;
// the front is always the minimum of the last `capacity` candidates.
type window struct {
	q        []windowEntry
	capacity int
	count    int
}

func newWindow(capacity int) *window {
	return &window{q: make([]windowEntry, 0, capacity), capacity: capacity}
}

// push admits the next candidate and returns the window minimum once the
// window is full.
func (w *window) push(c uint64) (uint64, bool) {
	t := w.count
	for len(w.q) > 0 && w.q[len(w.q)-1].val > c {
		w.q = w.q[:len(w.q)-1]
	}
	w.q = append(w.q, windowEntry{val: c, pos: t})
	for w.q[0].pos <= t-w.capacity {
		w.q = w.q[1:]
	}
	w.count++
	if t >= w.capacity-1 {
		return w.q[0].val, true
	}
	return 0, false
}

func (w *window) clear() {
	w.q = w.q[:0]
	w.count = 0
}

// Fmix64 is the murmur3 64-bit finalizer, used to spread minimizer values
// before downstream bucketing.
func Fmix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
