package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// SeqID is the name of the default ID sequence.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Bucket is a prefixed subspace of the DB that holds objects of a single
// type, together with their secondary indexes and sequences.
//
// It is a generic building block that should be embedded in a type safe
// wrapper.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ quorum.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data. It panics if the name is not
// a valid bucket name.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this bucket and all its indexes on the router. name
// is the query path and defaults to the bucket name.
func (b Bucket) Register(name string, r quorum.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for iname, idx := range b.indexes {
		r.Register(root+"/"+iname, idx)
	}
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	switch mod {
	case quorum.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []quorum.Model{quorum.Pair(key, value)}, nil
	case quorum.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
}

// DBKey is the full key stored in the db, including the prefix. A new
// slice is allocated so that the prefix is never shared.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// Get loads one object. It returns nil if nothing is stored under the key.
func (b Bucket) Get(db quorum.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse builds an object of this bucket's type from a key and a
// serialized value.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the object, updating all indexes.
func (b Bucket) Save(db quorum.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete removes the value at a key, updating all indexes.
func (b Bucket) Delete(db quorum.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db quorum.KVStore, key []byte, model Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	// Deleting a missing entity does not touch the indexes.
	if prev == nil && model == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns a Sequence by name.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of this bucket with given index. It panics if
// an index with that name is already registered.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex returns a copy of this bucket with an index that may
// reference an object under many keys.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %s registered twice", name))
	}
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = NewMultiKeyIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = indexes
	return b
}

// GetIndexed returns all objects referenced by the named index under the
// given index value.
func (b Bucket) GetIndexed(db quorum.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %s", name)
	}
	refs, err := consumeIteratorKeys(idx.Keys(db, key))
	if err != nil {
		return nil, err
	}
	return b.readRefs(db, refs)
}

func (b Bucket) readRefs(db quorum.ReadOnlyKVStore, refs [][]byte) ([]Object, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	objs := make([]Object, len(refs))
	for i, key := range refs {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		objs[i] = obj
	}
	return objs, nil
}
