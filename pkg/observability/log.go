package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements RenderHooks and HTTPHooks by writing structured log
// lines. It is what the coffeetier binary registers by default.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ RenderHooks = LogHooks{}
	_ HTTPHooks   = LogHooks{}
)

func (h LogHooks) OnRenderStart(_ context.Context, kind string) {
	h.Logger.Debug("render started", "kind", kind)
}

func (h LogHooks) OnRenderComplete(_ context.Context, kind string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("render failed", "kind", kind, "duration", d, "err", err)
		return
	}
	h.Logger.Info("rendered", "kind", kind, "bytes", size, "duration", d)
}

func (h LogHooks) OnValidation(_ context.Context, missing int) {
	if missing > 0 {
		h.Logger.Warn("incomplete submission", "missing", missing)
	}
}

func (h LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}
