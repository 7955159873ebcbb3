package app

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

type recordingInitializer struct {
	seen []string
	err  error
}

func (r *recordingInitializer) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	var names []string
	if err := opts.ReadOptions("names", &names); err != nil {
		return err
	}
	r.seen = append(r.seen, names...)
	return r.err
}

func TestInitChain(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	raw := `{"chain_id": "test-chain", "app_state": {"names": ["alice", "bob"]}}`
	assert.Nil(t, ioutil.WriteFile(path, []byte(raw), 0600))

	gen, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", gen.ChainID)

	var (
		first  = &recordingInitializer{}
		second = &recordingInitializer{}
	)
	db := store.MemStore()
	assert.Nil(t, InitChain(db, gen, ChainInitializers(first, second)))
	assert.Equal(t, []string{"alice", "bob"}, first.seen)
	assert.Equal(t, []string{"alice", "bob"}, second.seen)

	id, err := LoadChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", id)

	err = InitChain(db, gen, ChainInitializers())
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestInitChainFailures(t *testing.T) {
	opts := quorum.Options{"names": json.RawMessage(`["alice"]`)}

	err := InitChain(store.MemStore(), &Genesis{ChainID: "x", AppOptions: opts}, ChainInitializers())
	assert.IsErr(t, errors.ErrInvalidInput, err)

	failing := &recordingInitializer{err: errors.ErrState}
	after := &recordingInitializer{}
	err = InitChain(store.MemStore(), &Genesis{ChainID: "test-chain", AppOptions: opts}, ChainInitializers(failing, after))
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 0, len(after.seen))

	_, err = LoadGenesis(filepath.Join(os.TempDir(), "does-not-exist", "genesis.json"))
	assert.IsErr(t, errors.ErrInvalidInput, err)
}
