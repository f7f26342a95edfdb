package cache

// ScopedKeyer wraps a Keyer with a prefix.
//
// The pipeline scopes keys by result format version so that a format change
// never replays incompatible entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
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

// RunKey generates a prefixed key for a run.
func (k *ScopedKeyer) RunKey(targetHash string, opts RunKeyOpts) string {
	return k.prefix + k.inner.RunKey(targetHash, opts)
}
