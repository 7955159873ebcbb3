package orm

import (
	"bytes"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Index is a secondary index of a bucket.
type Index interface {
	// Name returns the name of this index.
	Name() string

	// Update updates the index. It must be called whenever an entity
	// of the bucket changes.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is an error
	Update(db quorum.KVStore, prev Object, save Object) error

	// Keys returns an iterator over all entity keys indexed under given
	// value. Values returned by the iterator are always nil.
	Keys(db quorum.ReadOnlyKVStore, value []byte) quorum.Iterator

	// Query handles queries from the QueryRouter.
	Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error)
}

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object. A nil key
// means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object.
type MultiKeyIndexer func(Object) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// compactIndex stores all primary keys indexed under a value in a single
// database entry. A unique index stores the primary key directly, a non
// unique index stores a MultiRef. It is meant for small collections.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex constructs an index. refKey calculates the absolute
// database key of a referenced entity.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     []byte(compactIdxPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func (i compactIndex) Name() string {
	return i.name
}

func (i compactIndex) indexKey(key []byte) []byte {
	out := make([]byte, len(i.id)+len(key))
	copy(out, i.id)
	copy(out[len(i.id):], key)
	return out
}

func (i compactIndex) Update(db quorum.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

func (i compactIndex) insert(db quorum.KVStore, key []byte, pk []byte) error {
	dbKey := i.indexKey(key)
	cur, err := db.Get(dbKey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(dbKey, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbKey, bz)
}

func (i compactIndex) remove(db quorum.KVStore, key []byte, pk []byte) error {
	dbKey := i.indexKey(key)
	cur, err := db.Get(dbKey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
		}
		return db.Delete(dbKey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbKey)
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbKey, bz)
}

// move updates the index entries of an object whose indexed values may
// have changed.
func (i compactIndex) move(db quorum.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot change the primary key of an object")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	for _, k := range oldKeys {
		if !containsKey(newKeys, k) {
			if err := i.remove(db, k, prev.Key()); err != nil {
				return err
			}
		}
	}
	for _, k := range newKeys {
		if !containsKey(oldKeys, k) {
			if err := i.insert(db, k, save.Key()); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i compactIndex) Keys(db quorum.ReadOnlyKVStore, value []byte) quorum.Iterator {
	refs, err := i.refs(db, i.indexKey(value))
	if err != nil {
		return &failedIterator{err: err}
	}
	return &keysIterator{keys: refs}
}

// refs returns the primary keys stored under the database key of an index
// entry.
func (i compactIndex) refs(db quorum.ReadOnlyKVStore, dbKey []byte) ([][]byte, error) {
	val, err := db.Get(dbKey)
	if err != nil || val == nil {
		return nil, err
	}
	return i.decodeRefs(val)
}

func (i compactIndex) decodeRefs(val []byte) ([][]byte, error) {
	if i.unique {
		return [][]byte{val}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(val); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return refs.Refs, nil
}

// Query returns the entities referenced by the index, either by an exact
// index value or by an index value prefix.
func (i compactIndex) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	var refs [][]byte
	switch mod {
	case quorum.KeyQueryMod:
		r, err := i.refs(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		refs = r
	case quorum.PrefixQueryMod:
		entries, err := queryPrefix(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			r, err := i.decodeRefs(e.Value)
			if err != nil {
				return nil, err
			}
			refs = append(refs, r...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
	return i.loadRefs(db, refs)
}

func (i compactIndex) loadRefs(db quorum.ReadOnlyKVStore, refs [][]byte) ([]quorum.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]quorum.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = quorum.Pair(key, value)
	}
	return res, nil
}

type failedIterator struct {
	err error
}

func (it *failedIterator) Next() ([]byte, []byte, error) {
	return nil, nil, it.err
}

func (failedIterator) Release() {}

type keysIterator struct {
	keys [][]byte
}

func (it *keysIterator) Next() ([]byte, []byte, error) {
	if len(it.keys) == 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "index keys")
	}
	key := it.keys[0]
	it.keys = it.keys[1:]
	return key, nil, nil
}

func (keysIterator) Release() {}
