// Package boxstat holds per-box statistics and the pure transforms applied
// to them before layout.
//
// # Overview
//
// A box is a summarized distribution at one axis position: quartiles,
// whiskers, mean, extremes, and optionally specification limits, natural
// boundaries, raw sample points and a probability density curve.
//
//   - [Raw] is the wire form. Absent statistics are nil pointers.
//   - [Box] is the computed form. Absent statistics are NaN.
//   - [Normalize] remaps every statistic onto [-1, 1] around the midpoint
//     of the specification window.
//   - [ClassifyOutliers] counts points beyond the whiskers.
//   - [Widths] derives relative box widths from sample counts.
//   - [Summarize] computes a [Raw] box from samples.
//
// # Normalization
//
// The window is taken from the specification limits and, where a limit is
// missing, from the natural boundary on the same side:
//
//	lo := lsl ?? lnb
//	hi := usl ?? unb
//	target := (lo + hi) / 2
//
// Values at or above target map through (v-target)/(hi-target), values
// below through (v-target)/(target-lo). A box without a window on either
// side is marked failed and keeps no statistics.
package boxstat
