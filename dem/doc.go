// Package dem parses Stim-style Detector Error Model text into a sequence
// of builder calls, decoupled from whatever graph type ultimately
// accumulates the edges (see driver.UserGraph).
//
// Supported instructions: error(p) D<i> ... [L<k> ...] [^ ...], detector
// D<i> [coords...], repeat N { ... }, blank lines and # comments. Every
// other instruction (shift_detectors, logical_observable, qubit_coords,
// tick, ...) is skipped rather than rejected, matching Stim's own
// tolerance for instructions a decoder doesn't need. The one exception
// is a shift_detectors line inside a repeat body, which sets that
// block's per-iteration detector shift.
package dem
