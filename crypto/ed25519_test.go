package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestSignVerify(t *testing.T) {
	priv, err := GenPrivKeyEd25519()
	assert.Nil(t, err)
	pub := priv.PublicKey()

	msg := []byte("approve proposal 1")
	sig := priv.Sign(msg)
	assert.Equal(t, true, pub.Verify(msg, sig))
	assert.Equal(t, false, pub.Verify([]byte("approve proposal 2"), sig))

	other, err := GenPrivKeyEd25519()
	assert.Nil(t, err)
	assert.Equal(t, false, other.PublicKey().Verify(msg, sig))
	assert.Equal(t, false, (&PublicKey{Ed25519: []byte("short")}).Verify(msg, sig))
}

func TestConditionAndAddress(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyEd25519FromSeed(seed)
	assert.Nil(t, err)
	b, err := PrivKeyEd25519FromSeed(seed)
	assert.Nil(t, err)

	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())
	assert.Nil(t, a.PublicKey().Address().Validate())

	ext, typ, data, err := a.PublicKey().Condition().Parse()
	assert.Nil(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte(a.PublicKey().Ed25519), data)

	_, err = PrivKeyEd25519FromSeed([]byte("too short"))
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestDerivePrivKey(t *testing.T) {
	// SLIP-0010 test vector 1 for ed25519.
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	assert.Nil(t, err)

	priv, err := DerivePrivKeyEd25519(seed, "m/0'")
	assert.Nil(t, err)
	wantPub := "8c8a13df77a28f3445213a0f432fde644acaa215fc72dcdf300d5efaa85d350c"
	assert.Equal(t, wantPub, priv.PublicKey().String())

	def, err := DerivePrivKeyEd25519(seed, "")
	assert.Nil(t, err)
	again, err := DerivePrivKeyEd25519(seed, DefaultDerivationPath)
	assert.Nil(t, err)
	assert.Equal(t, def, again)

	_, err = DerivePrivKeyEd25519(seed, "m/0")
	assert.IsErr(t, errors.ErrInvalidInput, err)
}

func TestLoadPrivKey(t *testing.T) {
	priv, err := GenPrivKeyEd25519()
	assert.Nil(t, err)
	loaded, err := LoadPrivKeyEd25519(priv.Ed25519)
	assert.Nil(t, err)
	assert.Equal(t, priv, loaded)

	_, err = LoadPrivKeyEd25519([]byte("invalid"))
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
