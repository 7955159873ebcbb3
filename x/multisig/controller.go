package multisig

import (
	"math"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Controller exposes group and proposal operations. Every operation either
// applies all of its changes or returns an error and changes nothing.
type Controller interface {
	// CreateGroup stores a new group with epoch 0 and returns its ID.
	CreateGroup(db quorum.KVStore, owners []quorum.Address, threshold uint32) ([]byte, error)

	// Reconfigure replaces owners and threshold of a group and increments
	// its epoch. Caller must be a current owner.
	Reconfigure(db quorum.KVStore, caller quorum.Address, groupID []byte, owners []quorum.Address, threshold uint32) error

	// Propose stores a new proposal of the action and returns its ID.
	// Caller must be a current owner.
	Propose(db quorum.KVStore, caller quorum.Address, groupID []byte, action *Action) ([]byte, error)

	// Approve sets the approval of the caller.
	Approve(db quorum.KVStore, caller quorum.Address, groupID, proposalID []byte) error

	// Execute marks the proposal as executed and hands its action to the
	// Executor. Anyone can execute an authorized proposal.
	Execute(ctx quorum.Context, db quorum.KVStore, caller quorum.Address, groupID, proposalID []byte) error

	// Group returns the group stored under groupID.
	Group(db quorum.ReadOnlyKVStore, groupID []byte) (*Group, error)

	// Proposal returns the proposal stored under proposalID if it belongs
	// to the group.
	Proposal(db quorum.ReadOnlyKVStore, groupID, proposalID []byte) (*Proposal, error)
}

// BaseController is the Controller implementation backed by the group and
// proposal buckets.
type BaseController struct {
	groups    orm.ModelBucket
	proposals ProposalBucket
	executor  Executor
}

var _ Controller = BaseController{}

// NewController returns a controller that hands executed actions to exec.
func NewController(exec Executor) BaseController {
	if exec == nil {
		exec = LogExecutor{}
	}
	return BaseController{
		groups:    NewGroupBucket(),
		proposals: NewProposalBucket(),
		executor:  exec,
	}
}

func (c BaseController) CreateGroup(db quorum.KVStore, owners []quorum.Address, threshold uint32) ([]byte, error) {
	g, err := c.prepareCreate(db, owners, threshold)
	if err != nil {
		return nil, err
	}
	key, err := c.groups.Put(db, nil, g)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store group")
	}
	return key, nil
}

func (c BaseController) Reconfigure(db quorum.KVStore, caller quorum.Address, groupID []byte, owners []quorum.Address, threshold uint32) error {
	g, err := c.prepareReconfigure(db, caller, groupID, owners, threshold)
	if err != nil {
		return err
	}
	if _, err := c.groups.Put(db, groupID, g); err != nil {
		return errors.Wrap(err, "cannot store group")
	}
	return nil
}

func (c BaseController) Propose(db quorum.KVStore, caller quorum.Address, groupID []byte, action *Action) ([]byte, error) {
	p, err := c.preparePropose(db, caller, groupID, action)
	if err != nil {
		return nil, err
	}
	key, err := c.proposals.Put(db, nil, p)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return key, nil
}

func (c BaseController) Approve(db quorum.KVStore, caller quorum.Address, groupID, proposalID []byte) error {
	p, err := c.prepareApprove(db, caller, groupID, proposalID)
	if err != nil {
		return err
	}
	if _, err := c.proposals.Put(db, proposalID, p); err != nil {
		return errors.Wrap(err, "cannot store proposal")
	}
	return nil
}

func (c BaseController) Execute(ctx quorum.Context, db quorum.KVStore, caller quorum.Address, groupID, proposalID []byte) error {
	p, err := c.prepareExecute(db, groupID, proposalID)
	if err != nil {
		return err
	}
	quorum.GetLogger(ctx).Debug("proposal authorized",
		"group", quorum.Address(groupID),
		"proposal", quorum.Address(proposalID),
		"caller", caller)

	return atomically(db, func(db quorum.KVStore) error {
		if _, err := c.proposals.Put(db, proposalID, p); err != nil {
			return errors.Wrap(err, "cannot store proposal")
		}
		if err := c.executor.Execute(ctx, groupID, proposalID, p.Action.Copy()); err != nil {
			return errors.Wrap(err, "executor")
		}
		return nil
	})
}

func (c BaseController) Group(db quorum.ReadOnlyKVStore, groupID []byte) (*Group, error) {
	var g Group
	if err := c.groups.One(db, groupID, &g); err != nil {
		return nil, errors.Wrapf(err, "group %X", groupID)
	}
	return &g, nil
}

func (c BaseController) Proposal(db quorum.ReadOnlyKVStore, groupID, proposalID []byte) (*Proposal, error) {
	return c.proposals.GetProposal(db, groupID, proposalID)
}

// prepareCreate returns the group that CreateGroup would store.
func (c BaseController) prepareCreate(db quorum.ReadOnlyKVStore, owners []quorum.Address, threshold uint32) (*Group, error) {
	max, err := loadMaxOwners(db)
	if err != nil {
		return nil, err
	}
	if err := validateMembers(owners, threshold, max); err != nil {
		return nil, err
	}
	return &Group{
		Metadata:  &quorum.Metadata{Schema: 1},
		Owners:    copyAddresses(owners),
		Threshold: threshold,
		Epoch:     0,
	}, nil
}

// prepareReconfigure returns the group state that Reconfigure would store.
func (c BaseController) prepareReconfigure(db quorum.ReadOnlyKVStore, caller quorum.Address, groupID []byte, owners []quorum.Address, threshold uint32) (*Group, error) {
	g, err := c.Group(db, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsOwner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	max, err := loadMaxOwners(db)
	if err != nil {
		return nil, err
	}
	if err := validateMembers(owners, threshold, max); err != nil {
		return nil, err
	}
	if g.Epoch == math.MaxUint64 {
		return nil, errors.Wrap(errors.ErrOverflow, "epoch")
	}
	g.Owners = copyAddresses(owners)
	g.Threshold = threshold
	g.Epoch++
	return g, nil
}

// preparePropose returns the proposal that Propose would store.
func (c BaseController) preparePropose(db quorum.ReadOnlyKVStore, caller quorum.Address, groupID []byte, action *Action) (*Proposal, error) {
	g, err := c.Group(db, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsOwner(caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	if err := validateAction(action); err != nil {
		return nil, errors.Field("Action", err, "")
	}
	return &Proposal{
		Metadata:  &quorum.Metadata{Schema: 1},
		GroupID:   append([]byte(nil), groupID...),
		Proposer:  append(quorum.Address(nil), caller...),
		Action:    action.Copy(),
		Approvals: make([]bool, len(g.Owners)),
		Executed:  false,
		Epoch:     g.Epoch,
	}, nil
}

// prepareApprove returns the proposal state that Approve would store.
func (c BaseController) prepareApprove(db quorum.ReadOnlyKVStore, caller quorum.Address, groupID, proposalID []byte) (*Proposal, error) {
	g, err := c.Group(db, groupID)
	if err != nil {
		return nil, err
	}
	p, err := c.Proposal(db, groupID, proposalID)
	if err != nil {
		return nil, err
	}
	pos, err := p.ApprovalPosition(g, caller)
	if err != nil {
		return nil, err
	}
	p.Approvals[pos] = true
	return p, nil
}

// prepareExecute returns the proposal state that Execute would store.
func (c BaseController) prepareExecute(db quorum.ReadOnlyKVStore, groupID, proposalID []byte) (*Proposal, error) {
	g, err := c.Group(db, groupID)
	if err != nil {
		return nil, err
	}
	p, err := c.Proposal(db, groupID, proposalID)
	if err != nil {
		return nil, err
	}
	if err := p.CanExecute(g); err != nil {
		return nil, err
	}
	p.Executed = true
	return p, nil
}

// atomically runs fn on a cache wrap of db and writes the changes only if fn
// succeeds. Stores that cannot be cache wrapped are used directly.
func atomically(db quorum.KVStore, fn func(quorum.KVStore) error) error {
	cdb, ok := db.(quorum.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
