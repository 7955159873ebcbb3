package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateGroupMsg         = "multisig/create_group"
	pathReconfigureMsg         = "multisig/reconfigure"
	pathProposeMsg             = "multisig/propose"
	pathApproveMsg             = "multisig/approve"
	pathExecuteMsg             = "multisig/execute"
	pathUpdateConfigurationMsg = "multisig/update_configuration"
)

var _ quorum.Msg = (*CreateGroupMsg)(nil)

// Path returns the routing path for this message.
func (CreateGroupMsg) Path() string {
	return pathCreateGroupMsg
}

// Validate ensures the message describes a valid group within the hard
// owner limit. The configured limit is checked by the handler.
func (m *CreateGroupMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateMembers(m.Owners, m.Threshold, MaxOwners)
}

var _ quorum.Msg = (*ReconfigureMsg)(nil)

// Path returns the routing path for this message.
func (ReconfigureMsg) Path() string {
	return pathReconfigureMsg
}

func (m *ReconfigureMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateRefs(m.GroupID, m.Caller); err != nil {
		return err
	}
	return validateMembers(m.Owners, m.Threshold, MaxOwners)
}

var _ quorum.Msg = (*ProposeMsg)(nil)

// Path returns the routing path for this message.
func (ProposeMsg) Path() string {
	return pathProposeMsg
}

func (m *ProposeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Append(
		validateRefs(m.GroupID, m.Caller),
		errors.Field("Action", validateAction(m.Action), ""),
	)
}

var _ quorum.Msg = (*ApproveMsg)(nil)

// Path returns the routing path for this message.
func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Append(
		validateRefs(m.GroupID, m.Caller),
		errors.Field("ProposalID", validateID(m.ProposalID), ""),
	)
}

var _ quorum.Msg = (*ExecuteMsg)(nil)

// Path returns the routing path for this message.
func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Append(
		validateRefs(m.GroupID, m.Caller),
		errors.Field("ProposalID", validateID(m.ProposalID), ""),
	)
}

var _ quorum.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message.
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "patch is required")
	}
	return nil
}

// validateRefs checks the group reference and the optional caller shared by
// most messages.
func validateRefs(groupID []byte, caller quorum.Address) error {
	var errs error
	errs = errors.AppendField(errs, "GroupID", validateID(groupID))
	if caller != nil {
		errs = errors.AppendField(errs, "Caller", caller.Validate())
	}
	return errs
}

// validateID checks that id looks like a sequence generated key.
func validateID(id []byte) error {
	switch n := len(id); {
	case n == 0:
		return errors.ErrEmpty
	case n != 8:
		return errors.Wrapf(errors.ErrInvalidInput, "invalid ID length %d", n)
	}
	return nil
}
