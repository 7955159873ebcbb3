package orm

import (
	"reflect"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model. It is used by ByIndex to load all matching models.
type ModelSlicePtr interface{}

// ModelBucket stores Models rather than Objects.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound if nothing is stored under key and ErrInvalidType if
	// dest cannot hold the stored model.
	One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex loads all models indexed under key by the named index into
	// destination, which must be a pointer to a slice of models. The slice
	// is replaced. Keys of the loaded models are returned in the same
	// order. ErrNotFound is returned if nothing is indexed under key.
	ByIndex(db quorum.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error)

	// Put saves the model under key. If key is nil, a new key is
	// generated with the bucket ID sequence. The key used is returned.
	Put(db quorum.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes the model stored under key. It returns ErrNotFound
	// if nothing is stored under key.
	Delete(db quorum.KVStore, key []byte) error

	// Has returns nil if a model is stored under key and ErrNotFound
	// otherwise.
	Has(db quorum.KVStore, key []byte) error

	// Register registers the bucket and its indexes on the query router.
	Register(name string, r quorum.QueryRouter)
}

// ModelBucketOption configures a ModelBucket.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// WithMultiKeyIndex configures the bucket to build an index with given
// name that may reference a model under many keys.
func WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithMultiKeyIndex(name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// m under the given bucket name.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	tp := reflect.TypeOf(m)
	mb := &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: tp,
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", res, dest)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) ByIndex(db quorum.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	objs, err := mb.b.GetIndexed(db, indexName, key)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no %s indexed as %X", mb.b.Name(), key)
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrInvalidType, "destination must be a pointer to a slice of models")
	}
	if dest.IsNil() {
		return nil, errors.Wrap(errors.ErrImmutable, "got nil pointer")
	}

	elemType := dest.Elem().Type().Elem()
	ptrElems := elemType.Kind() == reflect.Ptr
	if (ptrElems && elemType != mb.model) || (!ptrElems && reflect.PtrTo(elemType) != mb.model) {
		return nil, errors.Wrapf(errors.ErrInvalidType, "slice of %s cannot hold %s", elemType, mb.model)
	}

	slice := reflect.MakeSlice(dest.Elem().Type(), 0, len(objs))
	keys := make([][]byte, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			// The index refers to a removed entity.
			continue
		}
		val := reflect.ValueOf(obj.Value())
		if !ptrElems {
			val = val.Elem()
		}
		slice = reflect.Append(slice, val)
		keys = append(keys, obj.Key())
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db quorum.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrInvalidType, "cannot store %T in %s bucket", m, mb.model)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		var err error
		key, err = mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db quorum.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Has(db quorum.KVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.b.Name())
	}
	return nil
}

func (mb *modelBucket) Register(name string, r quorum.QueryRouter) {
	mb.b.Register(name, r)
}
