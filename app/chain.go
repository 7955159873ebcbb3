package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []quorum.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    router,
  )
*/
func ChainDecorators(chain ...quorum.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...quorum.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := make([]quorum.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	newChain = append(newChain, chain...)
	return Decorators{newChain}
}

// cutoffNil removes in place all nil values from given slice.
func cutoffNil(ds []quorum.Decorator) []quorum.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if isNil(ds[i]) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

func isNil(d quorum.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	// Wrap from the last decorator to the first one, so that the top of
	// the chain is executed first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler. Simplified version of a closure.
type step struct {
	d    quorum.Decorator
	next quorum.Handler
}

var _ quorum.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
