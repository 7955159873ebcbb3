package x

import (
	"github.com/iov-one/quorum"
)

// Authenticator extracts authentication info from the context. It is passed
// into handler constructors, so that the source of the verified identity can
// be replaced without touching the extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want
	// GetAddresses helper.
	GetConditions(quorum.Context) []quorum.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(quorum.Context, quorum.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators. Duplicates
// are dropped and the order of the first occurrence is preserved.
func (m MultiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var res []quorum.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true if any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all authenticated conditions.
func GetAddresses(ctx quorum.Context, auth Authenticator) []quorum.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]quorum.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx quorum.Context, auth Authenticator, required []quorum.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in required are
// also in context.
func HasNAddresses(ctx quorum.Context, auth Authenticator, required []quorum.Address, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func hasCondition(conds []quorum.Condition, c quorum.Condition) bool {
	for _, p := range conds {
		if p.Equals(c) {
			return true
		}
	}
	return false
}
