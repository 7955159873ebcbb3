package multisig

import (
	"github.com/iov-one/quorum/errors"
)

// Multisig reserves 1100~1109 error codes.
var (
	// ErrInvalidOwnerSet is returned when the list of owners is empty, too
	// long, contains duplicates or malformed addresses.
	ErrInvalidOwnerSet = errors.Register(1100, "invalid owner set")

	// ErrInvalidThreshold is returned when the threshold is not within
	// [1, number of owners].
	ErrInvalidThreshold = errors.Register(1101, "invalid threshold")

	// ErrAlreadyExecuted is returned when approving or executing a
	// proposal that was already executed.
	ErrAlreadyExecuted = errors.Register(1102, "proposal already executed")

	// ErrAlreadySigned is returned when an owner approves a proposal
	// twice, or approves a proposal that has no approval slot for the
	// owner position.
	ErrAlreadySigned = errors.Register(1103, "already signed")

	// ErrInsufficientApprovals is returned when executing a proposal with
	// less approvals than the group threshold.
	ErrInsufficientApprovals = errors.Register(1104, "insufficient approvals")

	// ErrStaleProposal is returned when executing a proposal created
	// before the last reconfiguration of its group.
	ErrStaleProposal = errors.Register(1105, "stale proposal")
)
