package quorumtest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/iov-one/quorum"
)

// NewCondition returns a random condition. It can be used to represent a
// signer in tests.
func NewCondition() quorum.Condition {
	data := make([]byte, 16)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return quorum.NewCondition("test", "key", data)
}

// NewConditions returns n random conditions.
func NewConditions(n int) []quorum.Condition {
	res := make([]quorum.Condition, n)
	for i := range res {
		res[i] = NewCondition()
	}
	return res
}

// Addresses returns the addresses of given conditions.
func Addresses(conds ...quorum.Condition) []quorum.Address {
	res := make([]quorum.Address, len(conds))
	for i, c := range conds {
		res[i] = c.Address()
	}
	return res
}

// SequenceID returns the key of the n-th entity created with an
// orm.Sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
