// Package drift corrects thermal channel drift between two gamma-ray spectra.
//
// A correction fits a polynomial calibration between reference and shifted
// peak positions, rebins the shifted spectrum onto the reference channel grid
// through the forward mapping and assembles a channel-by-channel table:
//
//	cfg := drift.DefaultConfig()
//	res, err := drift.Correct(reference, shifted, cfg)
//	if err != nil { ... }
//	row, ok := res.Table.Lookup(122)
//
// Correct is a pure function of its inputs. Results can be cached by callers
// under [Key].
package drift
