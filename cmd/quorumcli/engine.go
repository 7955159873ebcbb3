package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// dbName is the name of the database created in the home directory.
const dbName = "quorum"

// envFlags are the flags shared by all commands operating on the state.
type envFlags struct {
	home     *string
	logLevel *string
	debug    *bool
}

func registerEnvFlags(fl *flag.FlagSet) envFlags {
	return envFlags{
		home: fl.String("home", env("QUORUMCLI_HOME", filepath.Join(os.Getenv("HOME"), ".quorumcli")),
			"Directory where the state is stored. You can use QUORUMCLI_HOME environment variable to set it."),
		logLevel: fl.String("log", "error", "Log level filter, for example \"info\" or \"*:debug\"."),
		debug:    fl.Bool("debug", false, "Include internal error details in the transaction result."),
	}
}

func keyFlag(fl *flag.FlagSet) *string {
	return fl.String("key", env("QUORUMCLI_PRIV_KEY", filepath.Join(os.Getenv("HOME"), ".quorumcli.priv.key")),
		"Path to the private key file of the acting owner. You can use QUORUMCLI_PRIV_KEY environment variable to set it.")
}

// openStore opens the persistent state stored in the home directory.
func openStore(home string) (iavl.CommitStore, error) {
	if err := os.MkdirAll(home, 0700); err != nil {
		return iavl.CommitStore{}, fmt.Errorf("cannot create home directory: %s", err)
	}
	s := iavl.NewCommitStore(home, dbName)
	if err := s.LoadLatestVersion(); err != nil {
		s.Close()
		return iavl.CommitStore{}, fmt.Errorf("cannot load state: %s", err)
	}
	return s, nil
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}

// loadSigner reads the private key file and returns the condition of its
// public key.
func loadSigner(path string) (quorum.Condition, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	key, err := crypto.LoadPrivKeyEd25519(raw)
	if err != nil {
		return nil, err
	}
	return key.PublicKey().Condition(), nil
}

// keyAuth authenticates the owners of the loaded key files. Owning the
// private key file is what makes a command authorized to act for it.
type keyAuth struct {
	signers []quorum.Condition
}

var _ x.Authenticator = keyAuth{}

func (a keyAuth) GetConditions(quorum.Context) []quorum.Condition {
	return a.signers
}

func (a keyAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// cliTx carries a single message through the handler stack.
type cliTx struct {
	msg quorum.Msg
}

var _ quorum.Tx = (*cliTx)(nil)

func (tx *cliTx) GetMsg() (quorum.Msg, error) {
	return tx.msg, nil
}

func (tx *cliTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *cliTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "local transactions are not decoded")
}

// writerExecutor writes a JSON descriptor of every executed action.
type writerExecutor struct {
	out io.Writer
}

var _ multisig.Executor = writerExecutor{}

func (w writerExecutor) Execute(ctx quorum.Context, groupID, proposalID []byte, action *multisig.Action) error {
	gid, err := orm.DecodeSequence(groupID)
	if err != nil {
		return err
	}
	pid, err := orm.DecodeSequence(proposalID)
	if err != nil {
		return err
	}
	height, _ := quorum.GetHeight(ctx)
	executedAt, _ := quorum.BlockTime(ctx)
	return writeJSON(w.out, executedAction{
		Group:      gid,
		Proposal:   pid,
		Height:     height,
		ExecutedAt: executedAt,
		Action:     action,
	})
}

type executedAction struct {
	Group      int64            `json:"executed_group"`
	Proposal   int64            `json:"executed_proposal"`
	Height     int64            `json:"height"`
	ExecutedAt time.Time        `json:"executed_at"`
	Action     *multisig.Action `json:"action"`
}

// txResult is the printed outcome of a transaction.
type txResult struct {
	Code uint32            `json:"code"`
	Log  string            `json:"log,omitempty"`
	ID   int64             `json:"id,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// runTx processes a single message as the owner of the key file at keyPath.
// An empty keyPath runs the message without any signer. The state is
// committed only when the transaction succeeds.
func runTx(out io.Writer, ef envFlags, keyPath string, msg quorum.Msg) error {
	var auth keyAuth
	if keyPath != "" {
		signer, err := loadSigner(keyPath)
		if err != nil {
			return err
		}
		auth.signers = []quorum.Condition{signer}
	}

	logger, err := newLogger(*ef.logLevel)
	if err != nil {
		return err
	}

	s, err := openStore(*ef.home)
	if err != nil {
		return err
	}
	defer s.Close()

	// Executed actions are only reported once the state carrying them is
	// committed.
	var pending bytes.Buffer
	router := app.NewRouter()
	multisig.RegisterRoutes(router, auth, writerExecutor{out: &pending})
	handler := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)

	ctx, err := newContext(s, logger)
	if err != nil {
		return err
	}
	res := app.Process(ctx, s.Adapter(), handler, &cliTx{msg: msg}, *ef.debug)

	result := txResult{Code: res.Code, Log: res.Log}
	if len(res.Data) != 0 {
		if id, err := orm.DecodeSequence(res.Data); err == nil {
			result.ID = id
		}
	}
	if len(res.Tags) != 0 {
		result.Tags = make(map[string]string, len(res.Tags))
		for _, t := range res.Tags {
			result.Tags[string(t.Key)] = string(t.Value)
		}
	}
	if res.Code != 0 {
		if err := writeJSON(out, result); err != nil {
			return err
		}
		return fmt.Errorf("transaction failed with code %d", res.Code)
	}
	if _, err := s.Commit(); err != nil {
		return fmt.Errorf("cannot commit state: %s", err)
	}
	if _, err := io.Copy(out, &pending); err != nil {
		return err
	}
	return writeJSON(out, result)
}

// newContext returns the context of the next transaction. Every
// transaction is committed as its own version, so the height is the next
// version of the store.
func newContext(s iavl.CommitStore, logger log.Logger) (quorum.Context, error) {
	ctx := quorum.WithLogger(context.Background(), logger)
	last, err := s.LatestVersion()
	if err != nil {
		return nil, err
	}
	ctx = quorum.WithHeight(ctx, last.Version+1)
	ctx = quorum.WithBlockTime(ctx, time.Now().UTC())

	chainID, err := app.LoadChainID(s.Adapter())
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		ctx = quorum.WithChainID(ctx, chainID)
		ctx = quorum.WithLogInfo(ctx, "chain", chainID)
	}
	return ctx, nil
}

// view opens the state read only and calls fn with it.
func view(ef envFlags, fn func(db quorum.ReadOnlyKVStore) error) error {
	s, err := openStore(*ef.home)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.Adapter())
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}

// sequenceID returns the database key of the n-th sequence value.
func sequenceID(n int64) []byte {
	return orm.EncodeSequence(n)
}
