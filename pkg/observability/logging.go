package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline events to a logger at debug level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnPassStart(_ context.Context, traces int) {
	h.Logger.Debug("pass started", "traces", traces)
}

func (h LogPipelineHooks) OnPassComplete(_ context.Context, traces, boxes int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("pass failed", "traces", traces, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("pass complete", "traces", traces, "boxes", boxes, "duration", d)
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h LogPipelineHooks) OnHover(_ context.Context, mode string, hit bool, d time.Duration) {
	h.Logger.Debug("hover", "mode", mode, "hit", hit, "duration", d)
}

// LogCacheHooks writes cache events to a logger at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogServerHooks writes one line per served request.
type LogServerHooks struct {
	Logger *log.Logger
}

func (h LogServerHooks) OnRequest(context.Context, string, string) {}

func (h LogServerHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("request", "method", method, "route", route, "status", status, "duration", d)
}
