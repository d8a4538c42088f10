package peaks

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-gamma/dsp/interp"
)

// DefaultHalfWidth is the search radius, in channels, around a nominal peak.
const DefaultHalfWidth = 5

var (
	// ErrNoPeak is returned when the search window holds no positive counts.
	ErrNoPeak = errors.New("peaks: no positive counts in search window")
	// ErrOutOfRange is returned when the search window misses the spectrum.
	ErrOutOfRange = errors.New("peaks: nominal position outside spectrum")
)

// Peak describes a located peak.
type Peak struct {
	Nominal  float64 // position the search started from
	Index    int     // tallest channel index inside the window
	Position float64 // parabolic vertex position
	Height   float64 // parabolic vertex height
	FWHM     float64 // 0 when a half-maximum crossing is missing on either side
}

// Offset returns Position - Nominal.
func (p Peak) Offset() float64 {
	return p.Position - p.Nominal
}

// Locate finds the tallest channel within halfWidth channels of nominal and
// refines it with a three-point parabolic fit. halfWidth <= 0 selects
// DefaultHalfWidth.
func Locate(counts []float64, nominal float64, halfWidth int) (Peak, error) {
	if halfWidth <= 0 {
		halfWidth = DefaultHalfWidth
	}

	n := len(counts)
	if n == 0 || math.IsNaN(nominal) || math.IsInf(nominal, 0) {
		return Peak{}, ErrOutOfRange
	}

	center := int(math.Round(nominal))
	lo := max(center-halfWidth, 0)
	hi := min(center+halfWidth, n-1)

	if lo > hi {
		return Peak{}, ErrOutOfRange
	}

	best := lo
	for i := lo + 1; i <= hi; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}

	if counts[best] <= 0 {
		return Peak{}, ErrNoPeak
	}

	p := Peak{
		Nominal:  nominal,
		Index:    best,
		Position: float64(best),
		Height:   counts[best],
	}

	if best > 0 && best < n-1 {
		offset, value := interp.Parabolic(counts[best-1], counts[best], counts[best+1])
		p.Position += offset
		p.Height = value
	}

	p.FWHM = fwhm(counts, best, p.Height/2)

	return p, nil
}

// LocateAll locates one peak per nominal position.
func LocateAll(counts, nominals []float64, halfWidth int) ([]Peak, error) {
	out := make([]Peak, len(nominals))
	for i, nom := range nominals {
		p, err := Locate(counts, nom, halfWidth)
		if err != nil {
			return nil, err
		}

		out[i] = p
	}

	return out, nil
}

func fwhm(counts []float64, top int, half float64) float64 {
	left := math.NaN()

	for j := top - 1; j >= 0; j-- {
		if counts[j] < half {
			t, _ := interp.Crossing(counts[j], counts[j+1], half)
			left = interp.Linear(t, float64(j), float64(j+1))

			break
		}
	}

	right := math.NaN()

	for j := top + 1; j < len(counts); j++ {
		if counts[j] < half {
			t, _ := interp.Crossing(counts[j-1], counts[j], half)
			right = interp.Linear(t, float64(j-1), float64(j))

			break
		}
	}

	if math.IsNaN(left) || math.IsNaN(right) {
		return 0
	}

	return right - left
}
