package multisig

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogExecutor(t *testing.T) {
	var buf bytes.Buffer
	ctx := quorum.WithLogger(context.Background(), log.NewTMLogger(&buf))

	target := quorumtest.NewCondition().Address()
	err := LogExecutor{}.Execute(ctx, quorumtest.SequenceID(1), quorumtest.SequenceID(4), newAction(target))
	assert.Nil(t, err)

	out := buf.String()
	if !strings.Contains(out, "execute proposal") || !strings.Contains(out, target.String()) {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestExecutorFunc(t *testing.T) {
	var got *Action
	exec := ExecutorFunc(func(ctx quorum.Context, groupID, proposalID []byte, action *Action) error {
		got = action
		return nil
	})
	action := newAction(quorumtest.NewCondition().Address())
	assert.Nil(t, exec.Execute(context.Background(), nil, nil, action))
	assert.Equal(t, action, got)
}
