// Package sink provides output format renderers for box charts.
//
// # Overview
//
// A "sink" transforms a computed [Scene] into a final output format. This
// package provides renderers for:
//
//   - SVG: Scalable vector graphics, written with ajstarks/svgo
//   - PNG: Raster image output, drawn with fogleman/gg
//   - JSON: Geometry export for external tools and caching
//
// SVG and PNG share one paint routine: both draw the frame, the axes with
// their ticks, every trace's shapes clipped to the plot area and, when the
// scene carries one, the hover label overlay. Only the primitive drawing
// differs.
//
// # SVG Output
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithTicks(6),
//	    sink.WithEmbeddedFont(),
//	)
//
// # PNG Output
//
// PNG rendering needs no external tools; labels use the font from
// [fonts.NewFace].
//
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//
// # JSON Output
//
// [RenderJSON] exports the scene's shapes, axes and labels in
// pixel coordinates.
//
// [fonts.NewFace]: github.com/matzehuels/specbox/pkg/fonts.NewFace
package sink
