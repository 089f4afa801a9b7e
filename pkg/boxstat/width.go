package boxstat

import "math"

// Widths returns sqrt(count/maxCount) for every count. When no count is
// positive every box is drawn at full width.
func Widths(counts []float64) []float64 {
	widths := make([]float64, len(counts))
	var maxCount float64
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount <= 0 {
		for i := range widths {
			widths[i] = 1
		}
		return widths
	}
	for i, c := range counts {
		if c > 0 {
			widths[i] = math.Sqrt(c / maxCount)
		}
	}
	return widths
}
