package quorumtest

import "github.com/iov-one/quorum"

// Handler is a mock implementation of the quorum.Handler interface. It
// returns the configured results and counts calls.
type Handler struct {
	checkCall   int
	CheckResult quorum.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult quorum.DeliverResult
	DeliverErr    error

	// Write if set is stored under WriteKey on every successful call.
	WriteKey   []byte
	WriteValue []byte

	// Panic if set makes every call panic with this value.
	Panic interface{}
}

var _ quorum.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	h.checkCall++
	if err := h.call(db, h.CheckErr); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h.deliverCall++
	if err := h.call(db, h.DeliverErr); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, nil
}

// call writes the configured pair before returning err, so that tests can
// verify what happens with the writes of a failed handler.
func (h *Handler) call(db quorum.KVStore, err error) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.WriteKey != nil {
		if werr := db.Set(h.WriteKey, h.WriteValue); werr != nil {
			return werr
		}
	}
	return err
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
