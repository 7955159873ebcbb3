package orm

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestMultiRef(t *testing.T) {
	refs, err := NewMultiRef([]byte("c"), []byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, refs.Validate())

	assert.Nil(t, refs.Add([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, refs.Refs)
	assert.IsErr(t, errors.ErrDuplicate, refs.Add([]byte("a")))

	bz, err := refs.Marshal()
	assert.Nil(t, err)
	var loaded MultiRef
	assert.Nil(t, loaded.Unmarshal(bz))
	assert.Equal(t, refs.Refs, loaded.Refs)

	assert.Nil(t, refs.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, refs.Remove([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, refs.Refs)

	cpy := refs.Copy().(*MultiRef)
	assert.Nil(t, cpy.Add([]byte("d")))
	assert.Equal(t, 2, len(refs.Refs))

	empty, err := NewMultiRef()
	assert.Nil(t, err)
	assert.IsErr(t, errors.ErrEmpty, empty.Validate())
}
