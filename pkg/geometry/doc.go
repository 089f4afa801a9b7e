// Package geometry turns laid-out boxes into pixel-space shapes.
//
// [Build] runs after a [boxlayout.Pass] has been finalized: it reads the
// trace layout (bPos, bdPos, wdPos, dPos) and the final axis ranges and
// produces a [ShapeSet] per trace. The shapes are plain data; the render
// sinks draw them and the JSON sink serializes them as they are.
//
// For each box that normalized successfully Build emits:
//
//   - the q1-q3 rectangle and the median segment
//   - whiskers to lw and uw with optional caps
//   - specification-limit and natural-boundary cross lines
//   - the mean marker, and with boxmean the mean line or sd diamond
//   - mirrored probability density lobes
//   - sample points and outliers
//   - outlier count badges when outliers are excluded from the scale
//
// A box whose normalization failed gets a single invalid marker at the
// value-axis zero.
//
// [boxlayout.Pass]: github.com/matzehuels/specbox/pkg/boxlayout.Pass
package geometry
