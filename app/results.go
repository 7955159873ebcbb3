package app

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DeliverTxResult returns an abci response for a deliver call, converting
// the error if present or using the successful result.
// When in debug mode the full error information is returned.
func DeliverTxResult(res *quorum.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{
			Code: code,
			Log:  fmt.Sprintf("cannot deliver tx: %s", log),
		}
	}
	if res == nil {
		return abci.ResponseDeliverTx{}
	}
	return abci.ResponseDeliverTx{
		Data: res.Data,
		Log:  res.Log,
		Tags: res.Tags,
	}
}

// CheckTxResult returns an abci response for a check call, converting
// the error if present or using the successful result.
func CheckTxResult(res *quorum.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{
			Code: code,
			Log:  fmt.Sprintf("cannot check tx: %s", log),
		}
	}
	if res == nil {
		return abci.ResponseCheckTx{}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// Process runs given transaction through the handler: first Check against
// a throw away cache of the store and, if that succeeds, Deliver against the
// store itself. The deliver response is returned. Check errors are reported
// in the same response format.
func Process(ctx quorum.Context, db quorum.CacheableKVStore, h quorum.Handler, tx quorum.Tx, debug bool) abci.ResponseDeliverTx {
	ctx = quorum.WithLogInfo(ctx, "path", quorum.GetPath(tx))

	check := db.CacheWrap()
	_, err := h.Check(ctx, check, tx)
	check.Discard()
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{
			Code: code,
			Log:  fmt.Sprintf("cannot check tx: %s", log),
		}
	}

	res, err := h.Deliver(ctx, db, tx)
	return DeliverTxResult(res, err, debug)
}
