package cache

// ScopedKeyer prepends a namespace to every key of an inner Keyer, so
// deployments sharing one Redis instance never see each other's layouts.
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner     Keyer
	namespace string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, namespace string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, namespace: namespace}
}

func (k *ScopedKeyer) LayoutKey(layoutHash string, opts LayoutKeyOpts) string {
	return k.namespace + k.inner.LayoutKey(layoutHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.namespace + k.inner.ArtifactKey(layoutHash, opts)
}
