package multisig

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestMsgValidate(t *testing.T) {
	var (
		meta    = &quorum.Metadata{Schema: 1}
		owners  = quorumtest.Addresses(quorumtest.NewConditions(3)...)
		groupID = quorumtest.SequenceID(1)
		propID  = quorumtest.SequenceID(2)
	)

	cases := map[string]struct {
		msg        quorum.Msg
		wantErr    *errors.Error
		wantFields map[string]*errors.Error
	}{
		"valid create": {
			msg: &CreateGroupMsg{Metadata: meta, Owners: owners, Threshold: 2},
		},
		"create without metadata": {
			msg:     &CreateGroupMsg{Owners: owners, Threshold: 2},
			wantErr: errors.ErrMetadata,
		},
		"create with zero threshold": {
			msg:        &CreateGroupMsg{Metadata: meta, Owners: owners},
			wantFields: map[string]*errors.Error{"Threshold": ErrInvalidThreshold},
		},
		"create with duplicated owner": {
			msg:        &CreateGroupMsg{Metadata: meta, Owners: []quorum.Address{owners[0], owners[0]}, Threshold: 1},
			wantFields: map[string]*errors.Error{"Owners": ErrInvalidOwnerSet},
		},
		"valid reconfigure": {
			msg: &ReconfigureMsg{Metadata: meta, GroupID: groupID, Owners: owners, Threshold: 3},
		},
		"reconfigure without group": {
			msg:        &ReconfigureMsg{Metadata: meta, Owners: owners, Threshold: 3},
			wantFields: map[string]*errors.Error{"GroupID": errors.ErrEmpty},
		},
		"reconfigure with malformed caller": {
			msg:        &ReconfigureMsg{Metadata: meta, GroupID: groupID, Caller: quorum.Address("x"), Owners: owners, Threshold: 3},
			wantFields: map[string]*errors.Error{"Caller": errors.ErrInvalidInput},
		},
		"valid propose": {
			msg: &ProposeMsg{Metadata: meta, GroupID: groupID, Caller: owners[0], Action: newAction(owners[1])},
		},
		"propose without action": {
			msg: &ProposeMsg{Metadata: meta, GroupID: groupID},
			wantFields: map[string]*errors.Error{
				"Action":  errors.ErrEmpty,
				"GroupID": nil,
			},
		},
		"propose with missing participant": {
			msg: &ProposeMsg{
				Metadata: meta,
				GroupID:  groupID,
				Action:   &Action{Target: owners[0], Participants: []*Participant{nil}},
			},
			wantFields: map[string]*errors.Error{"Action": errors.ErrInvalidInput},
		},
		"valid approve": {
			msg: &ApproveMsg{Metadata: meta, GroupID: groupID, ProposalID: propID},
		},
		"approve without proposal": {
			msg: &ApproveMsg{Metadata: meta, GroupID: groupID},
			wantFields: map[string]*errors.Error{
				"ProposalID": errors.ErrEmpty,
				"GroupID":    nil,
			},
		},
		"valid execute": {
			msg: &ExecuteMsg{Metadata: meta, GroupID: groupID, ProposalID: propID},
		},
		"execute with short group id": {
			msg:        &ExecuteMsg{Metadata: meta, GroupID: []byte{1}, ProposalID: propID},
			wantFields: map[string]*errors.Error{"GroupID": errors.ErrInvalidInput},
		},
		"valid configuration update": {
			msg: &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{MaxOwners: 3}},
		},
		"configuration update without patch": {
			msg:        &UpdateConfigurationMsg{Metadata: meta},
			wantFields: map[string]*errors.Error{"Patch": errors.ErrEmpty},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil && len(tc.wantFields) == 0 {
				assert.Nil(t, err)
				return
			}
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			}
			for field, want := range tc.wantFields {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestMsgRoundTrip(t *testing.T) {
	owners := quorumtest.Addresses(quorumtest.NewConditions(2)...)
	msg := &ProposeMsg{
		Metadata: &quorum.Metadata{Schema: 1},
		GroupID:  quorumtest.SequenceID(7),
		Caller:   owners[1],
		Action:   newAction(owners[0]),
	}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	var got ProposeMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)
	assert.Equal(t, pathProposeMsg, got.Path())
}
