package rebin_test

import (
	"fmt"

	"github.com/cwbudde/algo-gamma/dsp/rebin"
)

func ExampleRebin() {
	// A source spectrum stretched by a factor of two: reference channel i
	// spans source channels [2i, 2i+2).
	src := []float64{1, 1, 2, 2, 3, 3, 4, 4, 5}
	stretch := rebin.MappingFunc(func(x float64) float64 { return 2 * x })

	out, err := rebin.Rebin(src, stretch, 1e-3)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, v := range out {
		fmt.Printf("%.2f ", v)
	}
	fmt.Println()
	// Output:
	// 2.00 4.00 6.00 8.00 0.00 0.00 0.00 0.00 0.00
}
