// Package render groups the output side of specbox.
//
//   - [color] parses CSS colors and derives fills and palettes
//   - [sink] draws a finalized scene as SVG, PNG or JSON
//
// Sinks never compute layout. They consume [sink.Scene], which the
// pipeline builds from a finalized pass and its shape sets.
package render
