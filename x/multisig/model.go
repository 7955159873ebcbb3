package multisig

import (
	"bytes"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// MaxOwners is the hard limit of owners in a single group. Configuration
// can only lower it.
const MaxOwners = 10

var _ orm.Model = (*Group)(nil)

// Validate ensures the group is in a consistent state.
func (g *Group) Validate() error {
	if err := g.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateMembers(g.Owners, g.Threshold, MaxOwners)
}

// Copy returns a deep copy of the group.
func (g *Group) Copy() orm.CloneableData {
	return &Group{
		Metadata:  g.Metadata.Copy(),
		Owners:    copyAddresses(g.Owners),
		Threshold: g.Threshold,
		Epoch:     g.Epoch,
	}
}

// OwnerPosition returns the index of the first occurrence of addr in the
// owners list or -1 if addr is not an owner.
func (g *Group) OwnerPosition(addr quorum.Address) int {
	if len(addr) == 0 {
		return -1
	}
	for i, o := range g.Owners {
		if o.Equals(addr) {
			return i
		}
	}
	return -1
}

// IsOwner returns true if addr is one of the group owners.
func (g *Group) IsOwner(addr quorum.Address) bool {
	return g.OwnerPosition(addr) >= 0
}

// validateMembers returns an error if owners and threshold cannot describe a
// group. Owner addresses must be unique.
func validateMembers(owners []quorum.Address, threshold uint32, maxOwners int) error {
	switch n := len(owners); {
	case n == 0:
		return errors.Field("Owners", ErrInvalidOwnerSet, "at least one owner is required")
	case n > maxOwners:
		return errors.Field("Owners", ErrInvalidOwnerSet, "%d owners, at most %d allowed", n, maxOwners)
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Field("Owners", ErrInvalidOwnerSet, "owner %d: %s", i, err)
		}
		for _, prev := range owners[:i] {
			if prev.Equals(o) {
				return errors.Field("Owners", ErrInvalidOwnerSet, "duplicated owner %s", o)
			}
		}
	}
	if threshold < 1 || int(threshold) > len(owners) {
		return errors.Field("Threshold", ErrInvalidThreshold, "%d not in [1, %d]", threshold, len(owners))
	}
	return nil
}

func copyAddresses(addrs []quorum.Address) []quorum.Address {
	if addrs == nil {
		return nil
	}
	cpy := make([]quorum.Address, len(addrs))
	for i, a := range addrs {
		cpy[i] = append(quorum.Address(nil), a...)
	}
	return cpy
}

// ProposalStatus describes what can be done with a proposal.
type ProposalStatus string

const (
	// StatusPending proposal needs more approvals.
	StatusPending ProposalStatus = "pending"
	// StatusExecutable proposal has enough approvals and can be executed.
	StatusExecutable ProposalStatus = "executable"
	// StatusStale proposal was created before the last reconfiguration
	// of its group and can never be executed.
	StatusStale ProposalStatus = "stale"
	// StatusExecuted proposal was executed.
	StatusExecuted ProposalStatus = "executed"
)

var _ orm.Model = (*Proposal)(nil)

// Validate ensures the proposal is in a consistent state.
func (p *Proposal) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	if len(p.GroupID) == 0 {
		errs = errors.AppendField(errs, "GroupID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Proposer", p.Proposer.Validate())
	errs = errors.AppendField(errs, "Action", validateAction(p.Action))
	if n := len(p.Approvals); n == 0 || n > MaxOwners {
		errs = errors.AppendField(errs, "Approvals", errors.Wrapf(errors.ErrModel, "%d approval slots", n))
	}
	return errs
}

// Copy returns a deep copy of the proposal.
func (p *Proposal) Copy() orm.CloneableData {
	return &Proposal{
		Metadata:  p.Metadata.Copy(),
		GroupID:   append([]byte(nil), p.GroupID...),
		Proposer:  append(quorum.Address(nil), p.Proposer...),
		Action:    p.Action.Copy(),
		Approvals: append([]bool(nil), p.Approvals...),
		Executed:  p.Executed,
		Epoch:     p.Epoch,
	}
}

// ApprovalCount returns the number of owners that approved the proposal.
func (p *Proposal) ApprovalCount() int {
	var n int
	for _, ok := range p.Approvals {
		if ok {
			n++
		}
	}
	return n
}

// IsStale returns true if the group was reconfigured after the proposal was
// created.
func (p *Proposal) IsStale(g *Group) bool {
	return p.Epoch != g.Epoch
}

// Status returns the state of the proposal in the context of its group.
func (p *Proposal) Status(g *Group) ProposalStatus {
	switch {
	case p.Executed:
		return StatusExecuted
	case p.IsStale(g):
		return StatusStale
	case p.ApprovalCount() >= int(g.Threshold):
		return StatusExecutable
	default:
		return StatusPending
	}
}

// ApprovalPosition returns the approval slot that caller can set. Checks
// are done in order: executed proposals cannot be approved, the caller must
// be a current owner and the owner position must refer to a not yet set
// approval slot.
func (p *Proposal) ApprovalPosition(g *Group, caller quorum.Address) (int, error) {
	if p.Executed {
		return 0, errors.Wrap(ErrAlreadyExecuted, "cannot approve")
	}
	pos := g.OwnerPosition(caller)
	if pos < 0 {
		return 0, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	if pos >= len(p.Approvals) {
		return 0, errors.Wrapf(ErrAlreadySigned, "no approval slot for owner position %d", pos)
	}
	if p.Approvals[pos] {
		return 0, errors.Wrapf(ErrAlreadySigned, "owner position %d", pos)
	}
	return pos, nil
}

// CanExecute returns an error if the proposal cannot be executed. Checks are
// done in order: the proposal must not be executed, it must not be stale and
// it must have at least threshold approvals.
func (p *Proposal) CanExecute(g *Group) error {
	if p.Executed {
		return errors.Wrap(ErrAlreadyExecuted, "cannot execute")
	}
	if p.IsStale(g) {
		return errors.Wrapf(ErrStaleProposal, "proposal epoch %d, group epoch %d", p.Epoch, g.Epoch)
	}
	if n := p.ApprovalCount(); n < int(g.Threshold) {
		return errors.Wrapf(ErrInsufficientApprovals, "%d of %d", n, g.Threshold)
	}
	return nil
}

// validateAction only checks that the action is present and structurally
// sound. Its meaning is up to the Executor.
func validateAction(a *Action) error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "action is required")
	}
	for i, p := range a.Participants {
		if p == nil {
			return errors.Wrapf(errors.ErrInvalidInput, "participant %d is empty", i)
		}
	}
	return nil
}

// Copy returns a deep copy of the action.
func (a *Action) Copy() *Action {
	if a == nil {
		return nil
	}
	var ps []*Participant
	if a.Participants != nil {
		ps = make([]*Participant, len(a.Participants))
		for i, p := range a.Participants {
			if p == nil {
				continue
			}
			ps[i] = &Participant{
				Address:    append(quorum.Address(nil), p.Address...),
				IsSigner:   p.IsSigner,
				IsWritable: p.IsWritable,
			}
		}
	}
	return &Action{
		Target:       append(quorum.Address(nil), a.Target...),
		Participants: ps,
		Payload:      append([]byte(nil), a.Payload...),
	}
}

// NewGroupBucket returns a bucket for storing groups. Keys are generated
// from a sequence. Groups are indexed by each of their owners.
func NewGroupBucket() orm.ModelBucket {
	return orm.NewModelBucket("groups", &Group{},
		orm.WithMultiKeyIndex("owner", groupOwnerIndexer, false))
}

func groupOwnerIndexer(obj orm.Object) ([][]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	g, ok := obj.Value().(*Group)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	keys := make([][]byte, len(g.Owners))
	for i, o := range g.Owners {
		keys[i] = o
	}
	return keys, nil
}

// ProposalBucket stores proposals and indexes them by their group.
type ProposalBucket struct {
	orm.ModelBucket
}

// NewProposalBucket returns a bucket for storing proposals. Keys are
// generated from a sequence.
func NewProposalBucket() ProposalBucket {
	b := orm.NewModelBucket("proposals", &Proposal{},
		orm.WithIndex("group", proposalGroupIndexer, false))
	return ProposalBucket{ModelBucket: b}
}

func proposalGroupIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil || obj.Value() == nil {
		return nil, nil
	}
	p, ok := obj.Value().(*Proposal)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	return p.GroupID, nil
}

// ByGroup returns all proposals of given group together with their keys.
func (b ProposalBucket) ByGroup(db quorum.ReadOnlyKVStore, groupID []byte) ([][]byte, []*Proposal, error) {
	var ps []*Proposal
	keys, err := b.ByIndex(db, "group", groupID, &ps)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil, nil
	case err != nil:
		return nil, nil, err
	}
	return keys, ps, nil
}

// GetProposal loads the proposal stored under proposalID. A proposal is only
// addressable through its own group: ErrNotFound is returned if it belongs to
// a different group.
func (b ProposalBucket) GetProposal(db quorum.ReadOnlyKVStore, groupID, proposalID []byte) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, proposalID, &p); err != nil {
		return nil, errors.Wrapf(err, "proposal %X", proposalID)
	}
	if !bytes.Equal(p.GroupID, groupID) {
		return nil, errors.Wrapf(errors.ErrNotFound, "proposal %X in group %X", proposalID, groupID)
	}
	return &p, nil
}
