package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

type updateTestConfigMsg struct {
	quorumtest.Msg
	Patch *testConfig
}

type wrongPatchMsg struct {
	quorumtest.Msg
}

func TestUpdateConfiguration(t *testing.T) {
	owner := quorumtest.NewCondition()
	stranger := quorumtest.NewCondition()
	newOwner := quorumtest.NewCondition()

	cases := map[string]struct {
		Signer    quorum.Condition
		Msg       quorum.Msg
		WantErr   *errors.Error
		WantConf  *testConfig
		SkipStore bool
	}{
		"owner updates a single field": {
			Signer:   owner,
			Msg:      &updateTestConfigMsg{Patch: &testConfig{Limit: 9}},
			WantConf: &testConfig{Owner: owner.Address(), Limit: 9, Label: "start"},
		},
		"owner hands over ownership": {
			Signer:   owner,
			Msg:      &updateTestConfigMsg{Patch: &testConfig{Owner: newOwner.Address()}},
			WantConf: &testConfig{Owner: newOwner.Address(), Limit: 1, Label: "start"},
		},
		"stranger cannot update": {
			Signer:  stranger,
			Msg:     &updateTestConfigMsg{Patch: &testConfig{Limit: 9}},
			WantErr: errors.ErrUnauthorized,
		},
		"invalid patched configuration": {
			Signer:  owner,
			Msg:     &updateTestConfigMsg{Patch: &testConfig{Limit: -9}},
			WantErr: errors.ErrInvalidInput,
		},
		"patch is required": {
			Signer:  owner,
			Msg:     &updateTestConfigMsg{},
			WantErr: errors.ErrState,
		},
		"message without patch field": {
			Signer:  owner,
			Msg:     &wrongPatchMsg{},
			WantErr: errors.ErrInvalidInput,
		},
		"configuration must exist": {
			Signer:    owner,
			Msg:       &updateTestConfigMsg{Patch: &testConfig{Limit: 9}},
			SkipStore: true,
			WantErr:   errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			initial := &testConfig{Owner: owner.Address(), Limit: 1, Label: "start"}
			if !tc.SkipStore {
				assert.Nil(t, Save(db, "test", initial))
			}

			h := NewUpdateConfigurationHandler("test", &testConfig{}, &quorumtest.Auth{Signer: tc.Signer})
			tx := &quorumtest.Tx{Msg: tc.Msg}

			_, err := h.Check(context.Background(), db, tx)
			assert.IsErr(t, tc.WantErr, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.WantErr, err)

			if tc.SkipStore {
				return
			}
			var got testConfig
			assert.Nil(t, Load(db, "test", &got))
			if tc.WantErr != nil {
				assert.Equal(t, initial, &got)
			} else {
				assert.Equal(t, tc.WantConf, &got)
			}
		})
	}
}
