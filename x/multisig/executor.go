package multisig

import (
	"github.com/iov-one/quorum"
)

// Executor carries out the action of an authorized proposal. It is called
// exactly once per proposal, after all authorization checks passed. When it
// returns an error the execution is aborted and the proposal is not marked
// as executed.
type Executor interface {
	Execute(ctx quorum.Context, groupID, proposalID []byte, action *Action) error
}

// ExecutorFunc is an adapter to use ordinary functions as an Executor.
type ExecutorFunc func(ctx quorum.Context, groupID, proposalID []byte, action *Action) error

// Execute calls fn.
func (fn ExecutorFunc) Execute(ctx quorum.Context, groupID, proposalID []byte, action *Action) error {
	return fn(ctx, groupID, proposalID, action)
}

// LogExecutor only logs the action using the context logger.
type LogExecutor struct{}

var _ Executor = LogExecutor{}

// Execute logs the action.
func (LogExecutor) Execute(ctx quorum.Context, groupID, proposalID []byte, action *Action) error {
	quorum.GetLogger(ctx).Info("execute proposal",
		"group", quorum.Address(groupID),
		"proposal", quorum.Address(proposalID),
		"target", action.Target,
		"participants", len(action.Participants),
		"payload_size", len(action.Payload))
	return nil
}
