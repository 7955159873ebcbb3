package app

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()

	var (
		foo = &quorumtest.Handler{}
		bar = &quorumtest.Handler{DeliverErr: errors.ErrUnauthorized}
	)
	r.Handle("multisig/foo", foo)
	r.Handle("multisig/bar", bar)

	ctx := context.Background()
	db := store.MemStore()

	_, err := r.Deliver(ctx, db, &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/foo"}})
	assert.Nil(t, err)
	assert.Equal(t, 1, foo.DeliverCallCount())

	_, err = r.Deliver(ctx, db, &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/bar"}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 1, bar.DeliverCallCount())

	_, err = r.Check(ctx, db, &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/bar"}})
	assert.Nil(t, err)
	assert.Equal(t, 1, bar.CheckCallCount())

	_, err = r.Check(ctx, db, &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "multisig/missing"}})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, db, &quorumtest.Tx{Err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestRouterRejectsInvalidPaths(t *testing.T) {
	r := NewRouter()
	r.Handle("multisig/create_group", &quorumtest.Handler{})

	assert.Panics(t, func() {
		r.Handle("multisig/create_group", &quorumtest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle("with space", &quorumtest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle("", &quorumtest.Handler{})
	})
}
