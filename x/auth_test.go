package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/x"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()

	ctx := context.Background()
	ctxAuth := &quorumtest.CtxAuth{Key: "auth"}
	ctx = ctxAuth.SetConditions(ctx, a, b)
	static := &quorumtest.Auth{Signer: c}

	cases := map[string]struct {
		auth       x.Authenticator
		mainSigner quorum.Condition
		all        []quorum.Address
		has        []quorum.Address
		hasNot     []quorum.Address
	}{
		"context authenticator": {
			auth:       ctxAuth,
			mainSigner: a,
			all:        []quorum.Address{a.Address(), b.Address()},
			has:        []quorum.Address{a.Address(), b.Address()},
			hasNot:     []quorum.Address{c.Address()},
		},
		"chained authenticators": {
			auth:       x.ChainAuth(ctxAuth, static),
			mainSigner: a,
			all:        []quorum.Address{a.Address(), b.Address(), c.Address()},
			has:        []quorum.Address{a.Address(), c.Address()},
		},
		"duplicates are dropped": {
			auth:       x.ChainAuth(static, static),
			mainSigner: c,
			all:        []quorum.Address{c.Address()},
			has:        []quorum.Address{c.Address()},
			hasNot:     []quorum.Address{a.Address()},
		},
		"no signer": {
			auth:   &quorumtest.Auth{},
			all:    []quorum.Address{},
			hasNot: []quorum.Address{a.Address()},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			signer := x.MainSigner(ctx, tc.auth)
			assert.Equal(t, tc.mainSigner, signer)
			assert.Equal(t, tc.all, x.GetAddresses(ctx, tc.auth))
			assert.True(t, x.HasAllAddresses(ctx, tc.auth, tc.has))
			for _, addr := range tc.hasNot {
				assert.False(t, tc.auth.HasAddress(ctx, addr))
			}
		})
	}
}

func TestHasNAddresses(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()
	auth := &quorumtest.Auth{Signers: []quorum.Condition{a, b}}
	ctx := context.Background()

	required := quorumtest.Addresses(a, b, c)
	assert.True(t, x.HasNAddresses(ctx, auth, required, 0))
	assert.True(t, x.HasNAddresses(ctx, auth, required, 2))
	assert.False(t, x.HasNAddresses(ctx, auth, required, 3))
	assert.False(t, x.HasAllAddresses(ctx, auth, required))
}
