package drift

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"

	"github.com/cwbudde/algo-gamma/dsp/spectrum"
)

// Key returns a hex BLAKE3 digest identifying a correction request. Equal
// inputs always produce equal keys; the key covers both spectra, both peak
// lists, the degree, the step and the rebin method.
func Key(reference, shifted spectrum.Spectrum, cfg Config) string {
	h := blake3.New()

	var buf [8]byte

	putUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putFloats := func(xs []float64) {
		putUint(uint64(len(xs)))
		for _, x := range xs {
			putUint(math.Float64bits(x))
		}
	}

	putFloats(reference.Counts())
	putFloats(shifted.Counts())
	putFloats(cfg.PeaksReference)
	putFloats(cfg.PeaksShifted)
	putUint(uint64(int64(cfg.Degree)))
	putUint(math.Float64bits(cfg.Step))

	method, err := cfg.method()
	if err != nil {
		_, _ = h.Write([]byte(cfg.Method))
	} else {
		putUint(uint64(method))
	}

	return hex.EncodeToString(h.Sum(nil))
}
