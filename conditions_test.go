package quorum_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := quorum.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%x", addr))
		So(addr.String(), ShouldEqual, strings.ToUpper(hex.EncodeToString(b)))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := quorum.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})

	Convey("empty address is printed as nil", t, func() {
		So(quorum.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestConditionParse(t *testing.T) {
	cond := quorum.NewCondition("multisig", "usage", []byte{0x1, 0x2})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "multisig", ext)
	assert.Equal(t, "usage", typ)
	assert.Equal(t, []byte{0x1, 0x2}, data)
	assert.NoError(t, cond.Validate())
	assert.Equal(t, "multisig/usage/0102", cond.String())

	bad := quorum.Condition("no-slashes-here")
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.True(t, errors.ErrInvalidInput.Is(bad.Validate()))
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(quorum.Address(nil).Validate()))
	assert.True(t, errors.ErrInvalidInput.Is(quorum.Address("short").Validate()))
	assert.NoError(t, quorum.NewAddress([]byte("anything")).Validate())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := quorum.NewAddress([]byte("some data"))
	bech, err := addr.Bech32("tiov")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr quorum.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf(`"%s"`, addr),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"hex:%s"`, addr),
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: quorum.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"bech32 decoding": {
			json:     fmt.Sprintf(`"bech32:%s"`, bech),
			wantAddr: addr,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInvalidInput,
		},
		"invalid hex length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInvalidInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInvalidType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a quorum.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("got address: %q (want %q)", a, tc.wantAddr)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := quorum.NewAddress([]byte("round trip"))
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got quorum.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}
