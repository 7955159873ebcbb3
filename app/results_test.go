package app

import (
	"context"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestDeliverTxResult(t *testing.T) {
	res := DeliverTxResult(&quorum.DeliverResult{Data: []byte("id"), Log: "ok"}, nil, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, []byte("id"), res.Data)

	res = DeliverTxResult(nil, errors.Wrap(errors.ErrUnauthorized, "not an owner"), false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	if !strings.Contains(res.Log, "not an owner") {
		t.Fatalf("unexpected log: %q", res.Log)
	}

	check := CheckTxResult(&quorum.CheckResult{GasAllocated: 7}, nil, false)
	assert.Equal(t, int64(7), check.GasWanted)

	check = CheckTxResult(nil, errors.ErrNotFound, false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), check.Code)
}

func TestProcess(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	tx := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "test/process"}}

	failing := &quorumtest.Handler{
		CheckErr:   errors.ErrState,
		WriteKey:   []byte("written"),
		WriteValue: []byte("yes"),
	}
	res := Process(ctx, db, failing, tx, false)
	assert.Equal(t, errors.ErrState.ABCICode(), res.Code)
	assert.Equal(t, 0, failing.DeliverCallCount())
	ok, err := db.Has([]byte("written"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	h := &quorumtest.Handler{
		DeliverResult: quorum.DeliverResult{Data: []byte("done")},
		WriteKey:      []byte("written"),
		WriteValue:    []byte("yes"),
	}
	res = Process(ctx, db, h, tx, false)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, []byte("done"), res.Data)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
	val, err := db.Get([]byte("written"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("yes"), val)
}
