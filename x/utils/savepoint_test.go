package utils

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestSavepoint(t *testing.T) {
	key, value := []byte("group"), []byte("two of three")

	cases := map[string]struct {
		savepoint Savepoint
		check     bool
		handlErr  error
		wantErr   *errors.Error
		wantValue []byte
	}{
		"deliver success is written": {
			savepoint: NewSavepoint().OnDeliver(),
			wantValue: value,
		},
		"deliver failure is dropped": {
			savepoint: NewSavepoint().OnDeliver(),
			handlErr:  errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
		},
		"deliver failure without savepoint is kept": {
			savepoint: NewSavepoint().OnCheck(),
			handlErr:  errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
			wantValue: value,
		},
		"check failure is dropped": {
			savepoint: NewSavepoint().OnCheck(),
			check:     true,
			handlErr:  errors.ErrEmpty,
			wantErr:   errors.ErrEmpty,
		},
		"check success is written": {
			savepoint: NewSavepoint().OnCheck().OnDeliver(),
			check:     true,
			wantValue: value,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			handler := &quorumtest.Handler{
				WriteKey:   key,
				WriteValue: value,
				CheckErr:   tc.handlErr,
				DeliverErr: tc.handlErr,
			}
			h := quorumtest.Decorate(handler, tc.savepoint)
			tx := &quorumtest.Tx{}

			var err error
			if tc.check {
				_, err = h.Check(context.Background(), db, tx)
			} else {
				_, err = h.Deliver(context.Background(), db, tx)
			}
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}

			got, err := db.Get(key)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantValue, got)
		})
	}
}
