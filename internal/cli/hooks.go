package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gooeyswipe/pkg/cache"
	"github.com/matzehuels/gooeyswipe/pkg/observability"
)

// logHooks reports effect, interaction and cache events as debug logs.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.EffectHooks      = (*logHooks)(nil)
	_ observability.InteractionHooks = (*logHooks)(nil)
	_ observability.CacheHooks       = (*logHooks)(nil)
)

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnSessionStart(id, direction string, vpos float64) {
	h.logger.Debug("effect started", "id", id, "direction", direction, "vpos", vpos)
}

func (h *logHooks) OnAnimationComplete(id string, target float64, elapsed time.Duration) {
	h.logger.Debug("animation complete", "id", id, "target", target, "elapsed", elapsed)
}

func (h *logHooks) OnSessionEnd(id string, animated bool) {
	h.logger.Debug("effect removed", "id", id, "animated", animated)
}

func (h *logHooks) OnGestureRejected(direction, reason string) {
	h.logger.Debug("gesture rejected", "direction", direction, "reason", reason)
}

func (h *logHooks) OnRelease(id, direction string, progress float64, commit bool) {
	h.logger.Debug("released", "id", id, "direction", direction, "progress", progress, "commit", commit)
}

func (h *logHooks) OnActionTriggered(id, direction string) {
	h.logger.Info("action triggered", "direction", direction)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "type", cache.KeyType(key))
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "type", cache.KeyType(key))
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "type", cache.KeyType(key), "bytes", size)
}
