package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis.
type Genesis struct {
	ChainID    string         `json:"chain_id"`
	AppOptions quorum.Options `json:"app_state"`
}

// LoadGenesis reads and parses the genesis file at given path.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis %q: %s", path, err)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...quorum.Initializer) quorum.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []quorum.Initializer
}

// FromGenesis passes opts to all Initializers in the list, aborting at the
// first error.
func (c chainInitializer) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

const chainIDKey = "_chain:id"

// LoadChainID returns the chain id stored if any.
func LoadChainID(kv quorum.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// InitChain stores the chain ID and runs all initializers over the genesis
// application options. It fails if the store was already initialized.
func InitChain(kv quorum.KVStore, gen *Genesis, init quorum.Initializer) error {
	if !quorum.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", gen.ChainID)
	}
	k := []byte(chainIDKey)
	switch ok, err := kv.Has(k); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "chain already initialized")
	}
	if err := kv.Set(k, []byte(gen.ChainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	if err := init.FromGenesis(gen.AppOptions, kv); err != nil {
		return errors.Wrap(err, "initialize from genesis")
	}
	return nil
}
