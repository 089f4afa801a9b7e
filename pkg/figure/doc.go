// Package figure defines the figure document: a layout plus box traces.
//
// A figure is read from JSON, TOML or YAML. All three decode through the
// same JSON field names, so a document converts between formats without
// loss:
//
//	fig, err := figure.ReadFile("lots.toml")
//	if err != nil {
//	    return err
//	}
//	if err := fig.Prepare(); err != nil {
//	    return err
//	}
//	axes := fig.BuildAxes()
//
// [Figure.Prepare] applies defaults, fills boxes given only as raw samples
// and validates every attribute. [Figure.BuildAxes] creates the axes the
// traces refer to, infers their types from the data and places them inside
// the plot area.
package figure
