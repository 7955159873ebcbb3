package utils

import (
	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the key of the tag appended by ActionTagger.
const ActionKey = "action"

// ActionTagger adds an `action = msg.Path()` tag to every successful
// delivery, so that clients can search for a given kind of operation, for
// example all executed proposals.
type ActionTagger struct{}

var _ quorum.Decorator = ActionTagger{}

// NewActionTagger creates an ActionTagger decorator.
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check passes the request along.
func (ActionTagger) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag to the result on success.
func (ActionTagger) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
