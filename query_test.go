package quorum

import (
	"testing"

	"github.com/iov-one/quorum/quorumtest/assert"
)

type staticQuery []Model

func (s staticQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return s, nil
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	want := staticQuery{Pair([]byte("k"), []byte("v"))}
	r.RegisterAll(func(qr QueryRouter) {
		qr.Register("/groups", want)
	})

	assert.Equal(t, nil, r.Handler("/proposals"))
	h := r.Handler("/groups")
	res, err := h.Query(nil, KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, []Model(want), res)

	assert.Panics(t, func() { r.Register("/groups", want) })
}

func TestSplitQueryPath(t *testing.T) {
	path, mod := SplitQueryPath("/proposals/group?prefix")
	assert.Equal(t, "/proposals/group", path)
	assert.Equal(t, PrefixQueryMod, mod)

	path, mod = SplitQueryPath("/groups")
	assert.Equal(t, "/groups", path)
	assert.Equal(t, KeyQueryMod, mod)
}
