// Package trace defines the declarative configuration of box traces and of
// the figure layout attributes they share.
//
// Configuration arrives as decoded documents with many attributes left
// unset. [Trace.SetDefaults] and [Layout.SetDefaults] fill them in, and
// [Trace.Validate] and [Layout.Validate] reject values the layout engine
// cannot handle. After that the engine reads fields directly.
//
// The x and y columns of a trace are polymorphic: whichever one carries box
// statistic objects is the value column, and it selects the default
// [Orientation].
package trace
