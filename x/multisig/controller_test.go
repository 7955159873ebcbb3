package multisig

import (
	"context"
	"math/rand"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

// recordingExecutor remembers every action it was given.
type recordingExecutor struct {
	calls []*Action
	err   error
}

func (r *recordingExecutor) Execute(ctx quorum.Context, groupID, proposalID []byte, action *Action) error {
	r.calls = append(r.calls, action)
	return r.err
}

func newAction(target quorum.Address) *Action {
	return &Action{
		Target: target,
		Participants: []*Participant{
			{Address: target, IsSigner: false, IsWritable: true},
		},
		Payload: []byte("transfer 100"),
	}
}

func mustProposal(t testing.TB, ctrl Controller, db quorum.ReadOnlyKVStore, groupID, proposalID []byte) *Proposal {
	t.Helper()
	p, err := ctrl.Proposal(db, groupID, proposalID)
	if err != nil {
		t.Fatalf("cannot load proposal: %s", err)
	}
	return p
}

func mustGroup(t testing.TB, ctrl Controller, db quorum.ReadOnlyKVStore, groupID []byte) *Group {
	t.Helper()
	g, err := ctrl.Group(db, groupID)
	if err != nil {
		t.Fatalf("cannot load group: %s", err)
	}
	return g
}

func TestThresholdExecution(t *testing.T) {
	var (
		ctx     = context.Background()
		db      = store.MemStore()
		exec    = &recordingExecutor{}
		ctrl    = NewController(exec)
		a, b, c = quorumtest.NewCondition().Address(), quorumtest.NewCondition().Address(), quorumtest.NewCondition().Address()
		target  = quorumtest.NewCondition().Address()
	)

	groupID, err := ctrl.CreateGroup(db, []quorum.Address{a, b, c}, 2)
	assert.Nil(t, err)
	assert.Equal(t, quorumtest.SequenceID(1), groupID)
	assert.Equal(t, uint64(0), mustGroup(t, ctrl, db, groupID).Epoch)

	action := newAction(target)
	proposalID, err := ctrl.Propose(db, a, groupID, action)
	assert.Nil(t, err)
	p := mustProposal(t, ctrl, db, groupID, proposalID)
	assert.Equal(t, []bool{false, false, false}, p.Approvals)
	assert.Equal(t, a, p.Proposer)
	assert.Equal(t, uint64(0), p.Epoch)

	assert.Nil(t, ctrl.Approve(db, a, groupID, proposalID))
	assert.Equal(t, []bool{true, false, false}, mustProposal(t, ctrl, db, groupID, proposalID).Approvals)

	err = ctrl.Execute(ctx, db, c, groupID, proposalID)
	assert.IsErr(t, ErrInsufficientApprovals, err)
	assert.Equal(t, 0, len(exec.calls))

	assert.Nil(t, ctrl.Approve(db, b, groupID, proposalID))
	assert.Equal(t, []bool{true, true, false}, mustProposal(t, ctrl, db, groupID, proposalID).Approvals)

	// Anyone can execute.
	stranger := quorumtest.NewCondition().Address()
	assert.Nil(t, ctrl.Execute(ctx, db, stranger, groupID, proposalID))
	assert.Equal(t, true, mustProposal(t, ctrl, db, groupID, proposalID).Executed)
	assert.Equal(t, 1, len(exec.calls))
	assert.Equal(t, action, exec.calls[0])

	err = ctrl.Execute(ctx, db, a, groupID, proposalID)
	assert.IsErr(t, ErrAlreadyExecuted, err)
	assert.Equal(t, 1, len(exec.calls))

	err = ctrl.Approve(db, c, groupID, proposalID)
	assert.IsErr(t, ErrAlreadyExecuted, err)
	assert.Equal(t, []bool{true, true, false}, mustProposal(t, ctrl, db, groupID, proposalID).Approvals)
}

func TestReconfigureMakesProposalsStale(t *testing.T) {
	var (
		ctx        = context.Background()
		db         = store.MemStore()
		exec       = &recordingExecutor{}
		ctrl       = NewController(exec)
		a, b, c, d = quorumtest.NewCondition().Address(), quorumtest.NewCondition().Address(),
			quorumtest.NewCondition().Address(), quorumtest.NewCondition().Address()
	)

	groupID, err := ctrl.CreateGroup(db, []quorum.Address{a, b, c}, 2)
	assert.Nil(t, err)

	y, err := ctrl.Propose(db, b, groupID, newAction(d))
	assert.Nil(t, err)
	// This one gathers enough approvals before the reconfiguration.
	z, err := ctrl.Propose(db, b, groupID, newAction(d))
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Approve(db, a, groupID, z))
	assert.Nil(t, ctrl.Approve(db, c, groupID, z))
	assert.Nil(t, ctrl.Approve(db, b, groupID, y))

	assert.Nil(t, ctrl.Reconfigure(db, c, groupID, []quorum.Address{a, b, d}, 2))
	g := mustGroup(t, ctrl, db, groupID)
	assert.Equal(t, uint64(1), g.Epoch)
	assert.Equal(t, []quorum.Address{a, b, d}, g.Owners)

	// Position of A did not change, so the approval is accepted.
	assert.Nil(t, ctrl.Approve(db, a, groupID, y))
	assert.Equal(t, []bool{true, true, false}, mustProposal(t, ctrl, db, groupID, y).Approvals)

	assert.IsErr(t, ErrStaleProposal, ctrl.Execute(ctx, db, a, groupID, y))
	assert.IsErr(t, ErrStaleProposal, ctrl.Execute(ctx, db, a, groupID, z))
	assert.Equal(t, 0, len(exec.calls))

	// C is no longer an owner.
	x, err := ctrl.Propose(db, a, groupID, newAction(d))
	assert.Nil(t, err)
	assert.IsErr(t, errors.ErrUnauthorized, ctrl.Approve(db, c, groupID, x))
	_, err = ctrl.Propose(db, c, groupID, newAction(d))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// A proposal created in the new epoch is executable.
	assert.Nil(t, ctrl.Approve(db, d, groupID, x))
	assert.Nil(t, ctrl.Approve(db, b, groupID, x))
	assert.Nil(t, ctrl.Execute(ctx, db, c, groupID, x))
	assert.Equal(t, 1, len(exec.calls))
}

func TestReconfigure(t *testing.T) {
	var (
		db      = store.MemStore()
		ctrl    = NewController(nil)
		a, b, c = quorumtest.NewCondition().Address(), quorumtest.NewCondition().Address(), quorumtest.NewCondition().Address()
	)
	groupID, err := ctrl.CreateGroup(db, []quorum.Address{a, b}, 1)
	assert.Nil(t, err)

	cases := []struct {
		caller    quorum.Address
		owners    []quorum.Address
		threshold uint32
		wantErr   *errors.Error
	}{
		{caller: c, owners: []quorum.Address{c}, threshold: 1, wantErr: errors.ErrUnauthorized},
		{caller: a, owners: nil, threshold: 1, wantErr: ErrInvalidOwnerSet},
		{caller: a, owners: []quorum.Address{a, a}, threshold: 1, wantErr: ErrInvalidOwnerSet},
		{caller: a, owners: []quorum.Address{a, b}, threshold: 3, wantErr: ErrInvalidThreshold},
		{caller: a, owners: []quorum.Address{a, b}, threshold: 0, wantErr: ErrInvalidThreshold},
		{caller: a, owners: []quorum.Address{a, b, c}, threshold: 3},
		{caller: c, owners: []quorum.Address{c}, threshold: 1},
		{caller: a, owners: []quorum.Address{a}, threshold: 1, wantErr: errors.ErrUnauthorized},
	}

	var wantEpoch uint64
	for i, tc := range cases {
		before := mustGroup(t, ctrl, db, groupID)
		err := ctrl.Reconfigure(db, tc.caller, groupID, tc.owners, tc.threshold)
		if !tc.wantErr.Is(err) {
			t.Fatalf("case %d: want %v error, got %+v", i, tc.wantErr, err)
		}
		after := mustGroup(t, ctrl, db, groupID)
		if tc.wantErr != nil {
			assert.Equal(t, before, after)
			continue
		}
		wantEpoch++
		assert.Equal(t, wantEpoch, after.Epoch)
		assert.Equal(t, tc.owners, after.Owners)
		assert.Equal(t, tc.threshold, after.Threshold)
	}

	err = ctrl.Reconfigure(db, a, quorumtest.SequenceID(99), []quorum.Address{a}, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestApprovalSlotsFollowOwnerCount(t *testing.T) {
	var (
		db   = store.MemStore()
		ctrl = NewController(nil)
		ids  = quorumtest.Addresses(quorumtest.NewConditions(4)...)
	)
	groupID, err := ctrl.CreateGroup(db, ids[:2], 1)
	assert.Nil(t, err)
	old, err := ctrl.Propose(db, ids[0], groupID, newAction(ids[0]))
	assert.Nil(t, err)

	assert.Nil(t, ctrl.Reconfigure(db, ids[0], groupID, ids, 3))
	fresh, err := ctrl.Propose(db, ids[3], groupID, newAction(ids[0]))
	assert.Nil(t, err)

	assert.Equal(t, 2, len(mustProposal(t, ctrl, db, groupID, old).Approvals))
	assert.Equal(t, 4, len(mustProposal(t, ctrl, db, groupID, fresh).Approvals))

	// The old proposal has no slot for the fourth owner.
	assert.IsErr(t, ErrAlreadySigned, ctrl.Approve(db, ids[3], groupID, old))
	assert.Nil(t, ctrl.Approve(db, ids[3], groupID, fresh))
}

func TestNonOwnerCannotApprove(t *testing.T) {
	var (
		ctx      = context.Background()
		db       = store.MemStore()
		ctrl     = NewController(nil)
		owners   = quorumtest.Addresses(quorumtest.NewConditions(3)...)
		stranger = quorumtest.NewCondition().Address()
	)
	groupID, err := ctrl.CreateGroup(db, owners, 2)
	assert.Nil(t, err)

	pending, err := ctrl.Propose(db, owners[0], groupID, newAction(stranger))
	assert.Nil(t, err)

	executable, err := ctrl.Propose(db, owners[0], groupID, newAction(stranger))
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Approve(db, owners[0], groupID, executable))
	assert.Nil(t, ctrl.Approve(db, owners[1], groupID, executable))

	stale, err := ctrl.Propose(db, owners[0], groupID, newAction(stranger))
	assert.Nil(t, err)

	executed, err := ctrl.Propose(db, owners[0], groupID, newAction(stranger))
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Approve(db, owners[0], groupID, executed))
	assert.Nil(t, ctrl.Approve(db, owners[2], groupID, executed))
	assert.Nil(t, ctrl.Execute(ctx, db, stranger, groupID, executed))

	assert.Nil(t, ctrl.Reconfigure(db, owners[1], groupID, owners, 2))

	for _, pid := range [][]byte{pending, executable, stale} {
		err := ctrl.Approve(db, stranger, groupID, pid)
		assert.IsErr(t, errors.ErrUnauthorized, err)
	}
	// Execution state is checked first.
	assert.IsErr(t, ErrAlreadyExecuted, ctrl.Approve(db, stranger, groupID, executed))
}

func TestApprovalsAreMonotonic(t *testing.T) {
	var (
		ctx    = context.Background()
		db     = store.MemStore()
		ctrl   = NewController(nil)
		owners = quorumtest.Addresses(quorumtest.NewConditions(5)...)
		others = quorumtest.Addresses(quorumtest.NewConditions(2)...)
		all    = append(append([]quorum.Address{}, owners...), others...)
		rnd    = rand.New(rand.NewSource(42))
	)
	groupID, err := ctrl.CreateGroup(db, owners, 4)
	assert.Nil(t, err)
	proposalID, err := ctrl.Propose(db, owners[2], groupID, newAction(others[0]))
	assert.Nil(t, err)

	var (
		count    int
		executed bool
	)
	for i := 0; i < 100; i++ {
		caller := all[rnd.Intn(len(all))]
		if rnd.Intn(4) == 0 {
			err := ctrl.Execute(ctx, db, caller, groupID, proposalID)
			switch {
			case executed:
				assert.IsErr(t, ErrAlreadyExecuted, err)
			case count >= 4:
				assert.Nil(t, err)
				executed = true
			default:
				assert.IsErr(t, ErrInsufficientApprovals, err)
			}
		} else {
			err := ctrl.Approve(db, caller, groupID, proposalID)
			if err == nil && executed {
				t.Fatal("approval of an executed proposal")
			}
		}

		p := mustProposal(t, ctrl, db, groupID, proposalID)
		got := p.ApprovalCount()
		if got < count {
			t.Fatalf("approval count decreased from %d to %d", count, got)
		}
		if executed && got != count {
			t.Fatalf("approval count changed after execution from %d to %d", count, got)
		}
		count = got
		assert.Equal(t, executed, p.Executed)
	}
}

func TestExecutorFailureChangesNothing(t *testing.T) {
	var (
		ctx     = context.Background()
		db      = store.MemStore()
		owners  = quorumtest.Addresses(quorumtest.NewConditions(2)...)
		failing = &recordingExecutor{err: errors.Wrap(errors.ErrState, "target unavailable")}
		working = &recordingExecutor{}
	)
	ctrl := NewController(failing)
	groupID, err := ctrl.CreateGroup(db, owners, 1)
	assert.Nil(t, err)
	proposalID, err := ctrl.Propose(db, owners[0], groupID, newAction(owners[1]))
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Approve(db, owners[1], groupID, proposalID))

	err = ctrl.Execute(ctx, db, owners[0], groupID, proposalID)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, len(failing.calls))
	assert.Equal(t, false, mustProposal(t, ctrl, db, groupID, proposalID).Executed)

	// Buckets are stateless, another controller sees the same data.
	ctrl = NewController(working)
	assert.Nil(t, ctrl.Execute(ctx, db, owners[0], groupID, proposalID))
	assert.Equal(t, 1, len(working.calls))
	assert.Equal(t, true, mustProposal(t, ctrl, db, groupID, proposalID).Executed)
}

func TestProposalIsAddressedThroughItsGroup(t *testing.T) {
	var (
		ctx    = context.Background()
		db     = store.MemStore()
		ctrl   = NewController(nil)
		owners = quorumtest.Addresses(quorumtest.NewConditions(2)...)
	)
	first, err := ctrl.CreateGroup(db, owners, 1)
	assert.Nil(t, err)
	second, err := ctrl.CreateGroup(db, owners, 1)
	assert.Nil(t, err)

	proposalID, err := ctrl.Propose(db, owners[0], first, newAction(owners[0]))
	assert.Nil(t, err)

	assert.IsErr(t, errors.ErrNotFound, ctrl.Approve(db, owners[0], second, proposalID))
	assert.IsErr(t, errors.ErrNotFound, ctrl.Execute(ctx, db, owners[0], second, proposalID))
	_, err = ctrl.Proposal(db, second, proposalID)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = ctrl.Proposal(db, first, quorumtest.SequenceID(42))
	assert.IsErr(t, errors.ErrNotFound, err)

	keys, ps, err := NewProposalBucket().ByGroup(db, first)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{proposalID}, keys)
	assert.Equal(t, 1, len(ps))

	keys, ps, err = NewProposalBucket().ByGroup(db, second)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))
	assert.Equal(t, 0, len(ps))
}

func TestProposeValidation(t *testing.T) {
	var (
		db     = store.MemStore()
		ctrl   = NewController(nil)
		owners = quorumtest.Addresses(quorumtest.NewConditions(2)...)
	)
	groupID, err := ctrl.CreateGroup(db, owners, 1)
	assert.Nil(t, err)

	_, err = ctrl.Propose(db, owners[0], groupID, nil)
	assert.IsErr(t, errors.ErrEmpty, err)

	_, err = ctrl.Propose(db, owners[0], groupID, &Action{Participants: []*Participant{nil}})
	assert.IsErr(t, errors.ErrInvalidInput, err)

	_, err = ctrl.Propose(db, nil, groupID, newAction(owners[0]))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = ctrl.Propose(db, owners[0], quorumtest.SequenceID(7), newAction(owners[0]))
	assert.IsErr(t, errors.ErrNotFound, err)

	// The action is stored verbatim.
	odd := &Action{Payload: []byte{0, 1, 2}}
	pid, err := ctrl.Propose(db, owners[1], groupID, odd)
	assert.Nil(t, err)
	assert.Equal(t, []byte{0, 1, 2}, mustProposal(t, ctrl, db, groupID, pid).Action.Payload)
}

func TestConfiguredMaxOwners(t *testing.T) {
	var (
		db     = store.MemStore()
		ctrl   = NewController(nil)
		owners = quorumtest.Addresses(quorumtest.NewConditions(3)...)
	)
	conf := &Configuration{
		Metadata:  &quorum.Metadata{Schema: 1},
		Owner:     owners[0],
		MaxOwners: 2,
	}
	assert.Nil(t, gconf.Save(db, configurationPkg, conf))

	_, err := ctrl.CreateGroup(db, owners, 1)
	assert.IsErr(t, ErrInvalidOwnerSet, err)

	groupID, err := ctrl.CreateGroup(db, owners[:2], 1)
	assert.Nil(t, err)
	err = ctrl.Reconfigure(db, owners[0], groupID, owners, 1)
	assert.IsErr(t, ErrInvalidOwnerSet, err)

	conf.MaxOwners = MaxOwners + 1
	assert.IsErr(t, errors.ErrInvalidInput, gconf.Save(db, configurationPkg, conf))
}
