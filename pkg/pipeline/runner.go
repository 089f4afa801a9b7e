package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/specbox/pkg/cache"
	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/hover"
	"github.com/matzehuels/specbox/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner; each call runs its own pass.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders fig in every requested format, reusing cached artifacts
// when all of them are present. fig is not modified.
func (r *Runner) Execute(ctx context.Context, fig *figure.Figure, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	work, hash, err := r.prepare(fig, opts)
	if err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = work.Layout.Title
	}
	result := &Result{FigureHash: hash}

	if !opts.NoCache {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Debug("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1+2: prepare and pass
	passStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnPassStart(ctx, len(work.Data))
	plot, err := Compute(work, opts)
	result.Stats.PassTime = time.Since(passStart)
	if err != nil {
		hooks.OnPassComplete(ctx, len(work.Data), 0, result.Stats.PassTime, err)
		return nil, err
	}
	result.Plot = plot
	result.Stats.Traces = len(work.Data)
	result.Stats.Boxes = plot.Boxes()
	hooks.OnPassComplete(ctx, result.Stats.Traces, result.Stats.Boxes, result.Stats.PassTime, nil)

	opts.Logger.Debug("computed pass",
		"traces", result.Stats.Traces,
		"boxes", result.Stats.Boxes,
		"duration", result.Stats.PassTime)

	// Stage 3: render
	var labels *hover.LabelSet
	if opts.Hover != nil {
		labels = plot.Hover(HoverOptions{Cursor: *opts.Hover})
	}
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(plot.Scene(labels), opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if !opts.NoCache {
		for format, data := range artifacts {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "err", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return result, nil
}

// Hover picks the box nearest to the cursor in fig. A miss is (nil, nil).
func (r *Runner) Hover(ctx context.Context, fig *figure.Figure, opts HoverOptions) (*hover.LabelSet, error) {
	start := time.Now()
	work, hash, err := r.prepare(fig, Options{})
	if err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = work.Layout.HoverMode
	}
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}

	key := r.Keyer.HoverKey(hash, cache.HoverKeyOpts{X: opts.X, Y: opts.Y, Mode: string(opts.Mode)})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var labels *hover.LabelSet
		if err := json.Unmarshal(data, &labels); err == nil {
			observability.Cache().OnCacheHit(ctx, "hover")
			observability.Pipeline().OnHover(ctx, string(opts.Mode), labels != nil, time.Since(start))
			return labels, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "hover")

	plot, err := Compute(work, Options{})
	if err != nil {
		return nil, err
	}
	labels := plot.Hover(opts)
	observability.Pipeline().OnHover(ctx, string(opts.Mode), labels != nil, time.Since(start))

	if data, err := json.Marshal(labels); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLHover); err != nil {
			r.Logger.Warn("cache write failed", "kind", "hover", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "hover", len(data))
		}
	}
	return labels, nil
}

// Click applies a click at the cursor to fig. When the click lands on the
// reveal-outliers label, fig's scaleIgnoresOutliers is toggled and
// toggled is true. The picked labels are returned either way.
func (r *Runner) Click(ctx context.Context, fig *figure.Figure, at Cursor) (labels *hover.LabelSet, toggled bool, err error) {
	work, _, err := r.prepare(fig, Options{})
	if err != nil {
		return nil, false, err
	}
	plot, err := Compute(work, Options{})
	if err != nil {
		return nil, false, err
	}
	labels = plot.Hover(HoverOptions{Cursor: at})
	if hover.Reveal(labels) {
		fig.Layout.ToggleOutliers()
		r.Logger.Debug("toggled outlier reveal", "ignoresOutliers", fig.Layout.IgnoresOutliers())
		return labels, true, nil
	}
	return labels, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare returns a prepared copy of fig and its content hash.
func (r *Runner) prepare(fig *figure.Figure, opts Options) (*figure.Figure, string, error) {
	if fig == nil {
		return nil, "", errInvalidFigure()
	}
	work, err := fig.Clone()
	if err != nil {
		return nil, "", err
	}
	applyFrame(work, opts)
	// Prepare is deterministic, so the input document identifies the
	// output. Prepared statistics may also hold NaN, which JSON rejects.
	data, err := json.Marshal(work)
	if err != nil {
		return nil, "", wrap(err, "hash figure")
	}
	if err := work.Prepare(); err != nil {
		return nil, "", err
	}
	return work, cache.Hash(data), nil
}

func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}
