package spectrum

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-gamma/dsp/core"
)

var (
	// ErrEmpty is returned when a spectrum has no channels.
	ErrEmpty = errors.New("spectrum: no channels")

	// ErrDuplicateChannel is returned when a channel number appears twice.
	ErrDuplicateChannel = errors.New("spectrum: duplicate channel")

	// ErrChannelGap is returned when channels are not contiguous from 1.
	ErrChannelGap = errors.New("spectrum: channels must be contiguous from 1")
)

// Spectrum is an immutable sequence of counts on a 1-based channel grid.
// The zero value is an empty spectrum.
type Spectrum struct {
	counts []float64
}

// New builds a spectrum from counts; counts[i] belongs to channel i+1.
// Counts must be finite and non-negative. The input slice is copied.
func New(counts []float64) (Spectrum, error) {
	if len(counts) == 0 {
		return Spectrum{}, ErrEmpty
	}
	if i := core.AllFinite(counts); i >= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: channel %d: %w", i+1, core.ErrNonFinite)
	}
	for i, c := range counts {
		if c < 0 {
			return Spectrum{}, fmt.Errorf("spectrum: channel %d count %g: %w", i+1, c, core.ErrNegativeCount)
		}
	}
	return Spectrum{counts: core.Clone(counts)}, nil
}

// FromPairs builds a spectrum from parallel channel and count columns, as
// read from a two-column table. Rows may arrive in any order; after sorting,
// channels must run 1..N without gaps or duplicates.
func FromPairs(channels []int, counts []float64) (Spectrum, error) {
	if len(channels) != len(counts) {
		return Spectrum{}, fmt.Errorf("spectrum: %d channels vs %d counts: %w",
			len(channels), len(counts), core.ErrShapeMismatch)
	}
	if len(channels) == 0 {
		return Spectrum{}, ErrEmpty
	}

	order := make([]int, len(channels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return channels[order[a]] < channels[order[b]]
	})

	sorted := make([]float64, len(counts))
	for pos, idx := range order {
		ch := channels[idx]
		if pos > 0 && ch == channels[order[pos-1]] {
			return Spectrum{}, fmt.Errorf("%w: %d", ErrDuplicateChannel, ch)
		}
		if ch != pos+1 {
			return Spectrum{}, fmt.Errorf("%w: expected channel %d, got %d", ErrChannelGap, pos+1, ch)
		}
		sorted[pos] = counts[idx]
	}

	return New(sorted)
}

// Len returns the number of channels N.
func (s Spectrum) Len() int { return len(s.counts) }

// Counts returns a copy of the counts, index i holding channel i+1.
func (s Spectrum) Counts() []float64 { return core.Clone(s.counts) }

// At returns the count at 0-based index i. It panics if i is out of range,
// like a slice index.
func (s Spectrum) At(i int) float64 { return s.counts[i] }

// CountAt returns the count at the 1-based channel. ok is false when the
// channel is outside 1..N.
func (s Spectrum) CountAt(channel int) (count float64, ok bool) {
	if channel < 1 || channel > len(s.counts) {
		return 0, false
	}
	return s.counts[channel-1], true
}

// Channels returns the channel numbers 1..N.
func (s Spectrum) Channels() []int {
	out := make([]int, len(s.counts))
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Equal reports whether s and other hold identical counts.
func (s Spectrum) Equal(other Spectrum) bool {
	if len(s.counts) != len(other.counts) {
		return false
	}
	for i, c := range s.counts {
		if other.counts[i] != c {
			return false
		}
	}
	return true
}
