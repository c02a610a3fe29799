package clipboard

// Indicator tracks which cards currently show as copied. Every Mark hands
// out a token; an Expire carrying an older token is ignored, so a card
// copied twice in quick succession stays marked for the full window after
// the second copy.
//
// The zero value is ready to use. Indicator is not safe for concurrent use;
// it lives inside a single event loop.
type Indicator struct {
	seq    uint64
	marked map[int]uint64
}

// Mark flags card index as copied and returns the token to pass to Expire.
func (in *Indicator) Mark(index int) uint64 {
	if in.marked == nil {
		in.marked = make(map[int]uint64)
	}
	in.seq++
	in.marked[index] = in.seq
	return in.seq
}

// Expire clears the mark on index if token is still the latest one.
func (in *Indicator) Expire(index int, token uint64) {
	if in.marked[index] == token {
		delete(in.marked, index)
	}
}

// Copied reports whether card index currently shows as copied.
func (in *Indicator) Copied(index int) bool {
	_, ok := in.marked[index]
	return ok
}

// Reset clears every mark, e.g. when the page changes.
func (in *Indicator) Reset() {
	clear(in.marked)
}
