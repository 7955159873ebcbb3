/*
Package crypto provides the ed25519 keys used to identify owners. A public key
is represented in the engine by its signature condition and the address
derived from it.
*/
package crypto

import (
	"encoding/hex"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

// DefaultDerivationPath is the SLIP-0010 path used when deriving a key from
// a seed without an explicit path.
const DefaultDerivationPath = "m/44'/234'/0'"

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrState, "generate ed25519 key: %s", err)
	}
	return &PrivateKey{Ed25519: priv}, nil
}

// PrivKeyEd25519FromSeed deterministically generates a private key from a
// 32 byte seed.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}, nil
}

// DerivePrivKeyEd25519 derives a private key from a master seed following
// the hardened only SLIP-0010 derivation path.
func DerivePrivKeyEd25519(masterSeed []byte, path string) (*PrivateKey, error) {
	if path == "" {
		path = DefaultDerivationPath
	}
	k, err := derivation.DeriveForPath(path, masterSeed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "derive key for path %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key)
}

// LoadPrivKeyEd25519 parses the raw private key bytes, as written to a key
// file.
func LoadPrivKeyEd25519(raw []byte) (*PrivateKey, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid private key length: %d", len(raw))
	}
	return &PrivateKey{Ed25519: raw}, nil
}

// Sign returns the signature of given message.
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
}

// PublicKey returns the corresponding public key.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Verify returns true if sig is a signature of message made with the
// private key of this public key.
func (p *PublicKey) Verify(message, sig []byte) bool {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a signature condition.
func (p *PublicKey) Condition() quorum.Condition {
	return quorum.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the signature condition.
func (p *PublicKey) Address() quorum.Address {
	return p.Condition().Address()
}

func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Ed25519)
}
