package quorumtest

import (
	"context"
	"fmt"

	"github.com/iov-one/quorum"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates every referenced condition. Signer is a convenience
// attribute for the single signer case. When both Signer and Signers are
// set, all of them are authenticated and Signer comes first.
type Auth struct {
	Signer  quorum.Condition
	Signers []quorum.Condition
}

// GetConditions returns all referenced conditions.
func (a *Auth) GetConditions(quorum.Context) []quorum.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]quorum.Condition{a.Signer}, a.Signers...)
}

// HasAddress returns true if any referenced condition has given address.
func (a *Auth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface. It stores and
// retrieves conditions from the context.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx quorum.Context, conds ...quorum.Condition) quorum.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

// GetConditions returns conditions stored in the context.
func (a *CtxAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]quorum.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []quorum.Condition got %T", val))
	}
	return conds
}

// HasAddress returns true if a condition stored in the context has given
// address.
func (a *CtxAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
