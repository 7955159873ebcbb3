package main

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestKeygen(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	// SLIP-0010 test vector 1 for ed25519.
	const seed = "000102030405060708090a0b0c0d0e0f"

	keyPath := filepath.Join(dir, "first.key")
	assert.Nil(t, cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath, "-seed", seed, "-path", "m/0'"}))

	raw, err := ioutil.ReadFile(keyPath)
	assert.Nil(t, err)
	assert.Equal(t, 64, len(raw))
	// The public key is the second half of the private key.
	assert.Equal(t, "8c8a13df77a28f3445213a0f432fde644acaa215fc72dcdf300d5efaa85d350c", hex.EncodeToString(raw[32:]))

	if err := cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}); err == nil {
		t.Fatal("existing key file must not be overwritten")
	}

	randomPath := filepath.Join(dir, "random.key")
	assert.Nil(t, cmdKeygen(nil, ioutil.Discard, []string{"-key", randomPath}))
	other, err := ioutil.ReadFile(randomPath)
	assert.Nil(t, err)
	if bytes.Equal(raw, other) {
		t.Fatal("random key must differ from the derived one")
	}
}

func TestKeyaddr(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	keyPath := filepath.Join(dir, "owner.key")
	assert.Nil(t, cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}))

	var hexOut bytes.Buffer
	assert.Nil(t, cmdKeyaddr(nil, &hexOut, []string{"-key", keyPath}))
	hexAddr, err := quorum.ParseAddress(strings.TrimSpace(hexOut.String()))
	assert.Nil(t, err)

	var bechOut bytes.Buffer
	assert.Nil(t, cmdKeyaddr(nil, &bechOut, []string{"-key", keyPath, "-bech32", "tiov"}))
	enc := strings.TrimSpace(bechOut.String())
	if !strings.HasPrefix(enc, "bech32:tiov1") {
		t.Fatalf("unexpected bech32 address: %q", enc)
	}
	bechAddr, err := quorum.ParseAddress(enc)
	assert.Nil(t, err)
	assert.Equal(t, hexAddr, bechAddr)
}

func tempDir(t testing.TB) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "quorumcli")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	return dir, func() { os.RemoveAll(dir) }
}
