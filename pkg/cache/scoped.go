package cache

// ScopedKeyer prefixes the keys of another Keyer, so several deployments
// (or a test run) can share one Redis without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(nil, "echart:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(chartHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
