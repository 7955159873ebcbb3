package quorumtest

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	auth := &Auth{Signer: a, Signers: []quorum.Condition{b}}
	ctx := context.Background()

	assert.Equal(t, []quorum.Condition{a, b}, auth.GetConditions(ctx))
	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, c.Address()))

	empty := &Auth{}
	assert.Equal(t, 0, len(empty.GetConditions(ctx)))
	assert.Equal(t, false, empty.HasAddress(ctx, a.Address()))
}

func TestCtxAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()
	auth := &CtxAuth{Key: "auth"}

	ctx := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(ctx)))

	ctx = auth.SetConditions(ctx, a)
	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, b.Address()))

	other := &CtxAuth{Key: "other"}
	assert.Equal(t, false, other.HasAddress(ctx, a.Address()))
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, SequenceID(1))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, SequenceID(256))
}
