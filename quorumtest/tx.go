package quorumtest

import "github.com/iov-one/quorum"

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is returned by GetMsg.
	Msg quorum.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ quorum.Tx = (*Tx)(nil)

// GetMsg returns the message and the error of this transaction.
func (tx *Tx) GetMsg() (quorum.Msg, error) {
	return tx.Msg, tx.Err
}

// Unmarshal is not supported.
func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

// Marshal is not supported.
func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a message with a configurable route path.
type Msg struct {
	// RoutePath is returned by Path and consumed by the router.
	RoutePath string
	// Serialized is the serialized form of this message.
	Serialized []byte
	// Err if set is returned by Marshal, Unmarshal and Validate.
	Err error
}

var _ quorum.Msg = (*Msg)(nil)

// Path returns RoutePath.
func (m *Msg) Path() string {
	return m.RoutePath
}

// Validate returns Err.
func (m *Msg) Validate() error {
	return m.Err
}

// Unmarshal stores given bytes.
func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

// Marshal returns stored bytes.
func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
