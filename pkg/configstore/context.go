package configstore

import "context"

type storeKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store carried by ctx, if any.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}

// MustFromContext returns the store carried by ctx and panics when there is
// none. A missing store is a wiring mistake, not a runtime condition.
func MustFromContext(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic("configstore: no store in context")
	}
	return s
}
