package store

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMemStore() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestMemStoreSuite(t *testing.T) {
	suite := NewTestSuite(makeMemStore)
	t.Run("GetSet", suite.GetSet)
	t.Run("CacheConflicts", suite.CacheConflicts)
	t.Run("FuzzIterator", suite.FuzzIterator)
	t.Run("IteratorWithConflicts", suite.IteratorWithConflicts)
}

func TestBTreeCacheableOverEmptyStore(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}
	cache := devnull.CacheWrap()

	k, v := []byte("group"), []byte("owners")
	require.NoError(t, cache.Set(k, v))
	got, err := cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// Writing to a black hole loses the data.
	require.NoError(t, cache.Write())
	got, err = devnull.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()

	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Delete([]byte("b")))
	require.NoError(t, kv.Set([]byte("c"), []byte("3")))

	recorded := ops.ShowOps()
	require.Len(t, recorded, 3)
	assert.True(t, recorded[0].IsSetOp())
	assert.False(t, recorded[1].IsSetOp())
	assert.Equal(t, []byte("b"), recorded[1].Key())
	assert.Equal(t, []byte("c"), recorded[2].Key())
}

func TestSliceIterator(t *testing.T) {
	Convey("Given a slice iterator", t, func() {
		it := NewSliceIterator([]Model{
			Pair([]byte("a"), []byte("1")),
			Pair([]byte("b"), []byte("2")),
		})

		Convey("It returns all models in order", func() {
			k, v, err := it.Next()
			So(err, ShouldBeNil)
			So(k, ShouldResemble, []byte("a"))
			So(v, ShouldResemble, []byte("1"))

			k, _, err = it.Next()
			So(err, ShouldBeNil)
			So(k, ShouldResemble, []byte("b"))

			_, _, err = it.Next()
			So(errors.ErrIteratorDone.Is(err), ShouldBeTrue)
		})

		Convey("It is empty once released", func() {
			it.Release()
			_, _, err := it.Next()
			So(errors.ErrIteratorDone.Is(err), ShouldBeTrue)
		})
	})
}

func TestNestedCacheWrapDiscard(t *testing.T) {
	Convey("Given a store with a nested cache wrap", t, func() {
		base := MemStore()
		So(base.Set([]byte("k"), []byte("base")), ShouldBeNil)

		outer := base.CacheWrap()
		inner := outer.CacheWrap()
		So(inner.Set([]byte("k"), []byte("inner")), ShouldBeNil)

		Convey("Writing the inner layer only reaches the outer layer", func() {
			So(inner.Write(), ShouldBeNil)
			v, err := outer.Get([]byte("k"))
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []byte("inner"))

			v, err = base.Get([]byte("k"))
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []byte("base"))
		})

		Convey("Discarding the outer layer keeps the base untouched", func() {
			So(inner.Write(), ShouldBeNil)
			outer.Discard()
			v, err := base.Get([]byte("k"))
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []byte("base"))
		})
	})
}
