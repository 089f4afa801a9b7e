package boxstat

import (
	"math"

	"github.com/montanaflynn/stats"
)

// KDE returns a Gaussian kernel density estimate of data sampled at n evenly
// spaced values spanning three bandwidths beyond the data range. The
// bandwidth follows Silverman's rule of thumb. It returns nil for fewer than
// two samples or n < 2.
func KDE(data []float64, n int) *Density {
	if len(data) < 2 || n < 2 {
		return nil
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return nil
	}
	iqr, err := stats.InterQuartileRange(data)
	if err != nil {
		iqr = 0
	}
	spread := sd
	if iqr > 0 {
		spread = min(sd, iqr/1.34)
	}
	if spread <= 0 {
		spread = 1
	}
	h := 0.9 * spread * math.Pow(float64(len(data)), -0.2)

	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	lo -= 3 * h
	hi += 3 * h
	step := (hi - lo) / float64(n-1)

	norm := 1 / (float64(len(data)) * h * math.Sqrt(2*math.Pi))
	d := &Density{Density: make([]float64, n), Scale: make([]float64, n)}
	for i := range n {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range data {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		d.Scale[i] = x
		d.Density[i] = sum * norm
	}
	return d
}
