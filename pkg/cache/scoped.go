package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by release
// version so that output from an older engine is never served after an
// upgrade.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(configHash string) string {
	return k.prefix + k.inner.LayoutKey(configHash)
}

// GeometryKey generates a prefixed geometry key.
func (k *ScopedKeyer) GeometryKey(paramsHash string) string {
	return k.prefix + k.inner.GeometryKey(paramsHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
