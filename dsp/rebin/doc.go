// Package rebin resamples a drifted spectrum onto a reference channel grid.
//
// Output channel i of the reference grid owns the interval [i, i+1). A
// forward [Mapping] carries that interval into the source (drifted) grid,
// giving the window [m(i), m(i+1)). The window is clamped to [0, N-1] and the
// source counts, treated as a piecewise-constant density (one value per
// channel), are integrated over it with a fixed step h:
//
//	out[i] = Σ_k h * src[floor(left + k*h)],  left + k*h < right
//
// Three methods compute this sum:
//
//   - [MethodCounted]: closed-form step counts per source channel (default)
//   - [MethodStepped]: the literal counted loop, one iteration per step
//   - [MethodExact]:   exact overlap lengths, the h → 0 limit
//
// Counted and stepped agree to within one step per channel boundary. None of
// them renormalizes the result: mass lost to clamping or discretization is
// left for callers to report.
package rebin
