package store

import "github.com/iov-one/quorum"

// Storage types are re-exported here for shorter names in the store
// implementations.

type (
	ReadOnlyKVStore  = quorum.ReadOnlyKVStore
	SetDeleter       = quorum.SetDeleter
	KVStore          = quorum.KVStore
	Batch            = quorum.Batch
	Iterator         = quorum.Iterator
	CacheableKVStore = quorum.CacheableKVStore
	KVCacheWrap      = quorum.KVCacheWrap
	CommitKVStore    = quorum.CommitKVStore
	CommitID         = quorum.CommitID
	Model            = quorum.Model
)

// Pair constructs a model from a key-value pair.
var Pair = quorum.Pair
