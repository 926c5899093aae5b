package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind the API server where different callers or
// deployments need separate cache namespaces.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(flowHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(flowHash, opts)
}

// ReportKey generates a prefixed key for validation report caching.
func (k *ScopedKeyer) ReportKey(flowHash string) string {
	return k.prefix + k.inner.ReportKey(flowHash)
}
