package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/x"
)

const (
	createGroupCost int64 = 100
	reconfigureCost int64 = 50
	proposeCost     int64 = 20
	approveCost     int64 = 5
	executeCost     int64 = 10
)

// RegisterRoutes registers handlers of all messages of this package. exec
// receives the actions of executed proposals.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, exec Executor) {
	ctrl := NewController(exec)
	r.Handle(pathCreateGroupMsg, CreateGroupHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathReconfigureMsg, ReconfigureHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathProposeMsg, ProposeHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathApproveMsg, ApproveHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathExecuteMsg, ExecuteHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(configurationPkg, &Configuration{}, auth))
}

// RegisterQuery registers the group and proposal buckets as "/groups" and
// "/proposals". Proposals of a group are available under "/proposals/group".
func RegisterQuery(qr quorum.QueryRouter) {
	NewGroupBucket().Register("groups", qr)
	NewProposalBucket().Register("proposals", qr)
}

// CreateGroupHandler creates a new group. Anyone can create a group.
type CreateGroupHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ quorum.Handler = CreateGroupHandler{}

func (h CreateGroupHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg CreateGroupMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.prepareCreate(db, msg.Owners, msg.Threshold); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: createGroupCost}, nil
}

func (h CreateGroupHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg CreateGroupMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	key, err := h.ctrl.CreateGroup(db, msg.Owners, msg.Threshold)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: key}, nil
}

// ReconfigureHandler replaces owners and threshold of a group. It must be
// signed by a current owner.
type ReconfigureHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ quorum.Handler = ReconfigureHandler{}

func (h ReconfigureHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.prepareReconfigure(db, caller, msg.GroupID, msg.Owners, msg.Threshold); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: reconfigureCost}, nil
}

func (h ReconfigureHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Reconfigure(db, caller, msg.GroupID, msg.Owners, msg.Threshold); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: msg.GroupID}, nil
}

func (h ReconfigureHandler) validate(ctx quorum.Context, tx quorum.Tx) (*ReconfigureMsg, quorum.Address, error) {
	var msg ReconfigureMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := requireCaller(ctx, h.auth, msg.Caller)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// ProposeHandler creates a new proposal. It must be signed by a current
// owner.
type ProposeHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ quorum.Handler = ProposeHandler{}

func (h ProposeHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.preparePropose(db, caller, msg.GroupID, msg.Action); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: proposeCost}, nil
}

func (h ProposeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.ctrl.Propose(db, caller, msg.GroupID, msg.Action)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: key}, nil
}

func (h ProposeHandler) validate(ctx quorum.Context, tx quorum.Tx) (*ProposeMsg, quorum.Address, error) {
	var msg ProposeMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := requireCaller(ctx, h.auth, msg.Caller)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// ApproveHandler sets the approval of the signing owner.
type ApproveHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ quorum.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.prepareApprove(db, caller, msg.GroupID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, caller, msg.GroupID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: msg.ProposalID}, nil
}

func (h ApproveHandler) validate(ctx quorum.Context, tx quorum.Tx) (*ApproveMsg, quorum.Address, error) {
	var msg ApproveMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := requireCaller(ctx, h.auth, msg.Caller)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// ExecuteHandler executes an authorized proposal. Anyone can execute a
// proposal. The action is handed to the Executor only on Deliver.
type ExecuteHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ quorum.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	msg, _, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.prepareExecute(db, msg.GroupID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: executeCost}, nil
}

func (h ExecuteHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Execute(ctx, db, caller, msg.GroupID, msg.ProposalID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: msg.ProposalID}, nil
}

func (h ExecuteHandler) validate(ctx quorum.Context, tx quorum.Tx) (*ExecuteMsg, quorum.Address, error) {
	var msg ExecuteMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if msg.Caller != nil {
		caller, err := requireCaller(ctx, h.auth, msg.Caller)
		return &msg, caller, err
	}
	var caller quorum.Address
	if main := x.MainSigner(ctx, h.auth); main != nil {
		caller = main.Address()
	}
	return &msg, caller, nil
}

// requireCaller returns the address acting in this transaction. An explicit
// caller must be authenticated, otherwise the main signer is used.
func requireCaller(ctx quorum.Context, auth x.Authenticator, explicit quorum.Address) (quorum.Address, error) {
	if explicit != nil {
		if !auth.HasAddress(ctx, explicit) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "caller %s did not sign", explicit)
		}
		return explicit, nil
	}
	main := x.MainSigner(ctx, auth)
	if main == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return main.Address(), nil
}
