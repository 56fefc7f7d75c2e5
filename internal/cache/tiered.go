// internal/cache/tiered.go
//
// Two-level cache: a fast primary (memory) in front of a durable secondary
// (SQLite). Reads promote secondary hits into the primary; writes go to
// both. Secondary errors are surfaced to the caller, which treats them as
// misses — cache trouble must never fail a lookup.

package cache

import "context"

type tiered struct {
	primary   Cache
	secondary Cache
}

// NewTiered layers primary over secondary.
func NewTiered(primary, secondary Cache) Cache {
	return &tiered{primary: primary, secondary: secondary}
}

func (t *tiered) Get(ctx context.Context, key string) ([]string, bool, error) {
	if v, ok, err := t.primary.Get(ctx, key); err == nil && ok {
		return v, true, nil
	}
	v, ok, err := t.secondary.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.primary.Put(ctx, key, v) // promotion is best-effort
	return v, true, nil
}

func (t *tiered) Put(ctx context.Context, key string, values []string) error {
	if err := t.primary.Put(ctx, key, values); err != nil {
		return err
	}
	return t.secondary.Put(ctx, key, values)
}
