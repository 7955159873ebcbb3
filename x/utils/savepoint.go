package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Savepoint isolates all writes done inside of the call. They are written
// to the store only if the call succeeds and dropped otherwise.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ quorum.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator. Call OnCheck or OnDeliver to
// choose when it is triggered.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that triggers on Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that triggers on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check optionally sets a savepoint.
func (s Savepoint) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	cstore, ok := store.(quorum.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}

// Deliver optionally sets a savepoint.
func (s Savepoint) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	cstore, ok := store.(quorum.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
