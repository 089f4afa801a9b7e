// Package pkg provides the core libraries of specbox, a box chart engine
// that normalizes box statistics to their specification windows, lays out
// boxes across traces and answers hover queries.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Statistics and layout: [boxstat], [trace], [axis], [boxlayout]
//  2. Drawing and picking: [geometry], [hover], [render]
//  3. Documents and orchestration: [figure], [pipeline]
//  4. Infrastructure: [cache], [store], [observability], [errors], [httputil]
//
// # Architecture
//
// The data flow for one render:
//
//	figure document (JSON, TOML, YAML)
//	         ↓
//	    [figure] package (decode, defaults, validation)
//	         ↓
//	    [boxlayout] package (normalize, position, reconcile across traces)
//	         ↓
//	    [geometry] package (box, whisker, outlier and density shapes)
//	         ↓
//	    [render/sink] package (SVG, PNG, JSON)
//
// Hover queries run [hover.Pick] against the same finalized pass.
//
// # Quick Start
//
//	fig, _ := figure.ReadFile("plot.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, fig, pipeline.Options{Formats: []string{"svg"}})
//	os.WriteFile("plot.svg", res.Artifacts["svg"], 0o644)
//
// # Caching
//
// [pipeline.Runner] caches artifacts and hover results through the
// [cache.Cache] interface. Backends are a local directory, badger, and Redis.
package pkg
