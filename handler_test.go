package quorum

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestReadOptions(t *testing.T) {
	type group struct {
		Owners    []string `json:"owners"`
		Threshold int      `json:"threshold"`
	}

	cases := map[string]struct {
		json    string
		key     string
		wantErr *errors.Error
		want    []group
	}{
		"happy path": {
			json: `{"multisig": [{"owners": ["a", "b"], "threshold": 1}]}`,
			key:  "multisig",
			want: []group{{Owners: []string{"a", "b"}, Threshold: 1}},
		},
		"missing key is not an error": {
			json: `{"other": [{"threshold": 1}]}`,
			key:  "multisig",
		},
		"wrong body": {
			json:    `{"multisig": "not a list"}`,
			key:     "multisig",
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got []group
			err := o.ReadOptions(tc.key, &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
