package boxstat

import "math"

// Outliers holds the number of points beyond each whisker.
type Outliers struct {
	LOC int // points strictly below the lower whisker
	UOC int // points strictly above the upper whisker
}

// Any reports whether there is at least one outlier on either side.
func (o Outliers) Any() bool {
	return o.LOC > 0 || o.UOC > 0
}

// ClassifyOutliers counts points strictly below lw and strictly above uw.
// A NaN bound disables counting on that side.
func ClassifyOutliers(points []float64, lw, uw float64) Outliers {
	var o Outliers
	for _, p := range points {
		if !math.IsNaN(lw) && p < lw {
			o.LOC++
		}
		if !math.IsNaN(uw) && p > uw {
			o.UOC++
		}
	}
	return o
}
