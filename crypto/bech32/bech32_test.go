package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/quorum/errors"
)

func TestEncodeDecode(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected human readable part: %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Fatalf("want %X, got %X", want, payload)
	}

	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if string(raw) != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestDecodeInvalid(t *testing.T) {
	// Last character of the checksum changed.
	_, _, err := Decode(`tiov1w3jhxapdwpshjmr0v9jqymqq4z`)
	if !errors.ErrInvalidInput.Is(err) {
		t.Fatalf("want invalid input error, got %+v", err)
	}
}
