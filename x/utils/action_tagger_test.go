package utils

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestActionTagger(t *testing.T) {
	db := store.MemStore()
	tx := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/execute"}}

	h := quorumtest.Decorate(&quorumtest.Handler{}, NewActionTagger())
	res, err := h.Deliver(context.Background(), db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Tags))
	assert.Equal(t, []byte(ActionKey), res.Tags[0].Key)
	assert.Equal(t, []byte("multisig/execute"), res.Tags[0].Value)

	failing := quorumtest.Decorate(&quorumtest.Handler{DeliverErr: errors.ErrState}, NewActionTagger())
	_, err = failing.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrState, err)

	broken := &quorumtest.Tx{Err: errors.ErrInvalidType}
	_, err = h.Deliver(context.Background(), db, broken)
	assert.IsErr(t, errors.ErrInvalidType, err)
}
