// Package axis implements the cartesian axis model the box layout engine is
// built on.
//
// An [Axis] converts between four coordinate spaces:
//
//   - data (d): the values found in a figure document, such as numbers,
//     category names or date strings
//   - calc (c): float64 coordinates produced by [Axis.D2C]; category axes
//     map names to their index, date axes to Unix milliseconds
//   - linear (l): the space in which the range is linear; it differs from c
//     only on log axes
//   - pixel (p): screen coordinates within the plot area
//
// Layout code asks an axis to grow through [Axis.Expand] with [Extremes]
// computed by [Axis.FindExtremes], and hints tick spacing through
// [Axis.MinDtick]. Once every trace has contributed, [Axis.ComputeRange] fixes
// the range and pixel conversion becomes valid.
package axis
