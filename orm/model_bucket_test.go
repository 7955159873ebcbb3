package orm

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("refs", &MultiRef{}, WithIndex("first", firstRef, false))

	k1, err := b.Put(db, nil, mustRefs(t, "a", "b"))
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), k1)

	k2, err := b.Put(db, nil, mustRefs(t, "a"))
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), k2)

	k3, err := b.Put(db, []byte("custom"), mustRefs(t, "c"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("custom"), k3)

	var got MultiRef
	assert.Nil(t, b.One(db, k1, &got))
	assert.Equal(t, mustRefs(t, "a", "b").Refs, got.Refs)

	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("missing"), &got))
	assert.Nil(t, b.Has(db, k2))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("missing")))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, nil))

	var ptrs []*MultiRef
	keys, err := b.ByIndex(db, "first", []byte("a"), &ptrs)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)
	assert.Equal(t, 2, len(ptrs))

	var values []MultiRef
	keys, err = b.ByIndex(db, "first", []byte("c"), &values)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k3}, keys)
	assert.Equal(t, [][]byte{[]byte("c")}, values[0].Refs)

	_, err = b.ByIndex(db, "first", []byte("zzz"), &values)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = b.ByIndex(db, "first", []byte("a"), values)
	assert.IsErr(t, errors.ErrInvalidType, err)
	var wrong []*SimpleObj
	_, err = b.ByIndex(db, "first", []byte("a"), &wrong)
	assert.IsErr(t, errors.ErrInvalidType, err)

	assert.Nil(t, b.Delete(db, k1))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, k1))
	keys, err = b.ByIndex(db, "first", []byte("a"), &ptrs)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k2}, keys)
}

func TestModelBucketRejectsInvalidModel(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("refs", &MultiRef{})

	_, err := b.Put(db, nil, &MultiRef{})
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestModelBucketMultiKeyIndex(t *testing.T) {
	db := store.MemStore()
	allRefs := func(obj Object) ([][]byte, error) {
		return obj.Value().(*MultiRef).Refs, nil
	}
	b := NewModelBucket("refs", &MultiRef{}, WithMultiKeyIndex("all", allRefs, false))

	k1, err := b.Put(db, nil, mustRefs(t, "a", "b"))
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, mustRefs(t, "b"))
	assert.Nil(t, err)

	var values []MultiRef
	keys, err := b.ByIndex(db, "all", []byte("a"), &values)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1}, keys)
	keys, err = b.ByIndex(db, "all", []byte("b"), &values)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)

	// Overwriting drops the index entries the model no longer carries.
	_, err = b.Put(db, k1, mustRefs(t, "c"))
	assert.Nil(t, err)
	_, err = b.ByIndex(db, "all", []byte("a"), &values)
	assert.IsErr(t, errors.ErrNotFound, err)
	keys, err = b.ByIndex(db, "all", []byte("b"), &values)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k2}, keys)
}
