package quorumtest

import "github.com/iov-one/quorum"

// Decorator is a mock implementation of the quorum.Decorator interface.
//
// Set CheckErr or DeliverErr to force an error response for the
// corresponding method. Otherwise the wrapped handler is called. Every call
// is counted.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by Check instead of calling the
	// wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by Deliver instead of calling the
	// wrapped handler.
	DeliverErr error
}

var _ quorum.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls d with h as the next step.
func Decorate(h quorum.Handler, d quorum.Decorator) quorum.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn quorum.Handler
	dc quorum.Decorator
}

var _ quorum.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
