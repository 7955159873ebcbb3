package orm

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	groups := NewSequence("groups", SeqID)
	proposals := NewSequence("proposals", SeqID)

	n, raw, err := groups.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), n)
	assert.Nil(t, raw)

	for want := int64(1); want <= 3; want++ {
		got, err := groups.NextInt(db)
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}

	val, err := proposals.NextVal(db)
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), val)

	n, _, err = groups.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDecodeSequence(t *testing.T) {
	n, err := DecodeSequence(EncodeSequence(258))
	assert.Nil(t, err)
	assert.Equal(t, int64(258), n)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrDatabase, err)

	assert.IsErr(t, errors.ErrEmpty, ValidateSequence(nil))
	assert.IsErr(t, errors.ErrInvalidInput, ValidateSequence([]byte{1}))
	assert.Nil(t, ValidateSequence(EncodeSequence(1)))
}
