// Package boxlayout turns box traces into positioned, normalized boxes and
// reconciles spacing across traces that share axes.
//
// # Phases
//
// A [Pass] runs one recalculation of a figure:
//
//  1. [Pass.Calc] runs once per trace. It normalizes every box, counts
//     outliers, resolves positions, derives box widths and the trace's own
//     spacing, and computes the value-axis extent the trace needs.
//  2. [Pass.CrossTrace] groups traces by (x axis, y axis, orientation) and
//     calls [Reconcile] once per group, so every member shares one spacing
//     and one position-axis extent.
//  3. [Pass.Finalize] fixes axis ranges and computes the per-trace box
//     offset and half-width with [SetPositions].
//
// Every member of a group is reconciled before any geometry is built from
// it. The pass replaces a figure-wide box counter: trace ordinals live in
// the Pass and die with it.
package boxlayout
