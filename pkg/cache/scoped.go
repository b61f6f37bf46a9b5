package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools can share one
// Redis database without colliding:
//
//	serverKeys := NewScopedKeyer(NewDefaultKeyer(), "gooeyswipe:serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FrameKey generates a prefixed frame key.
func (k *ScopedKeyer) FrameKey(opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(opts)
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(state, format string) string {
	return k.prefix + k.inner.DiagramKey(state, format)
}
