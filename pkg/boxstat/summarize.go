package boxstat

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/matzehuels/specbox/pkg/errors"
)

// whiskerFence is the Tukey fence multiplier applied to the IQR.
const whiskerFence = 1.5

// SummarizeOption configures [Summarize].
type SummarizeOption func(*summarizeConfig)

type summarizeConfig struct {
	densityPoints int
	lsl, usl      float64
	lnb, unb      float64
}

// WithDensity attaches a Gaussian kernel density estimate sampled at n
// points.
func WithDensity(n int) SummarizeOption {
	return func(c *summarizeConfig) { c.densityPoints = n }
}

// WithSpecLimits sets the specification limits. NaN leaves a side unset.
func WithSpecLimits(lsl, usl float64) SummarizeOption {
	return func(c *summarizeConfig) { c.lsl, c.usl = lsl, usl }
}

// WithNaturalBoundaries sets the natural boundaries. NaN leaves a side
// unset.
func WithNaturalBoundaries(lnb, unb float64) SummarizeOption {
	return func(c *summarizeConfig) { c.lnb, c.unb = lnb, unb }
}

// Summarize computes quartiles, Tukey whiskers, mean and extremes of samples.
// Non-finite samples are dropped.
func Summarize(samples []float64, opts ...SummarizeOption) (Raw, error) {
	cfg := summarizeConfig{lsl: math.NaN(), usl: math.NaN(), lnb: math.NaN(), unb: math.NaN()}
	for _, opt := range opts {
		opt(&cfg)
	}

	data := make(stats.Float64Data, 0, len(samples))
	for _, s := range samples {
		if !math.IsNaN(s) && !math.IsInf(s, 0) {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return Raw{}, errors.New(errors.ErrCodeInvalidInput, "no finite samples to summarize")
	}
	slices.Sort(data)

	q1, med, q3 := data[0], data[0], data[0]
	if len(data) > 1 {
		qs, err := stats.Quartile(data)
		if err != nil {
			return Raw{}, errors.Wrap(errors.ErrCodeInternal, err, "quartiles")
		}
		q1, med, q3 = qs.Q1, qs.Q2, qs.Q3
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Raw{}, errors.Wrap(errors.ErrCodeInternal, err, "mean")
	}
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)

	iqr := q3 - q1
	lowFence, highFence := q1-whiskerFence*iqr, q3+whiskerFence*iqr
	lw, uw := q1, q3
	for _, v := range data {
		if v >= lowFence {
			lw = min(v, q1)
			break
		}
	}
	for _, v := range slices.Backward(data) {
		if v <= highFence {
			uw = max(v, q3)
			break
		}
	}

	raw := Raw{
		Q1: F(q1), Q3: F(q3), Med: F(med), Avg: F(mean),
		LW: F(lw), UW: F(uw), Min: F(lo), Max: F(hi),
		Points: slices.Clone([]float64(data)),
		Count:  float64(len(data)),
	}
	raw.Set(LSL, cfg.lsl)
	raw.Set(USL, cfg.usl)
	raw.Set(LNB, cfg.lnb)
	raw.Set(UNB, cfg.unb)

	if cfg.densityPoints > 1 && len(data) > 1 {
		raw.ProbabilityDensity = KDE(data, cfg.densityPoints)
	}
	return raw, nil
}

// sampleSD returns the sample standard deviation of points, NaN when fewer
// than two points are given.
func sampleSD(points []float64) float64 {
	if len(points) < 2 {
		return math.NaN()
	}
	sd, err := stats.StandardDeviationSample(points)
	if err != nil {
		return math.NaN()
	}
	return sd
}
