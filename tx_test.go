package quorum

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

type demoMsg struct {
	Num  int
	Text string
}

func (demoMsg) Path() string               { return "demo" }
func (demoMsg) Validate() error            { return nil }
func (demoMsg) Marshal() ([]byte, error)   { return []byte("demo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

var _ Msg = (*demoMsg)(nil)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		Tx      Tx
		Dest    interface{}
		WantMsg Msg
		WantErr *errors.Error
	}{
		"success, mock message": {
			Tx:      &txMock{Msg: &msgMock{ID: 4219}},
			Dest:    &msgMock{},
			WantMsg: &msgMock{ID: 4219},
		},
		"success, demo message": {
			Tx:      &txMock{Msg: &demoMsg{Num: 102, Text: "foobar"}},
			Dest:    &demoMsg{},
			WantMsg: &demoMsg{Num: 102, Text: "foobar"},
		},
		"transaction contains a nil message": {
			Tx:      &txMock{Msg: nil},
			Dest:    &msgMock{},
			WantErr: errors.ErrInvalidType,
		},
		"transaction cannot provide a message": {
			Tx:      &txMock{Err: errors.ErrMsg},
			Dest:    &msgMock{},
			WantErr: errors.ErrMsg,
		},
		"destination is not a pointer": {
			Tx:      &txMock{Msg: &demoMsg{Num: 81421}},
			Dest:    msgMock{},
			WantErr: errors.ErrInvalidType,
		},
		"destination of a wrong type": {
			Tx:      &txMock{Msg: &demoMsg{Num: 94151}},
			Dest:    &msgMock{},
			WantErr: errors.ErrInvalidType,
		},
		"destination is a nil interface": {
			Tx:      &txMock{Msg: &msgMock{ID: 45192}},
			Dest:    Msg(nil),
			WantErr: errors.ErrInvalidType,
		},
		"destination is a nil pointer": {
			Tx:      &txMock{Msg: &msgMock{ID: 91841231}},
			Dest:    (*msgMock)(nil),
			WantErr: errors.ErrInvalidType,
		},
		"message fails validation": {
			Tx:      &txMock{Msg: &msgMock{ID: 5, Err: errors.ErrState}},
			Dest:    &msgMock{},
			WantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.Tx, tc.Dest); !tc.WantErr.Is(err) {
				t.Fatalf("want %q error, got %q", tc.WantErr, err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.WantMsg, tc.Dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo", GetPath(&txMock{Msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&txMock{Err: errors.ErrMsg}))
}

type txMock struct {
	Tx
	Msg Msg
	Err error
}

func (tx *txMock) GetMsg() (Msg, error) {
	return tx.Msg, tx.Err
}

type msgMock struct {
	Msg
	// ID is used only to compare instances if the content is the same.
	ID  int64
	Err error
}

func (mock *msgMock) Validate() error {
	return mock.Err
}
