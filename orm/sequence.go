package orm

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Sequence maintains a counter and generates a series of keys. Each key is
// greater than the last, both as a number and when compared as bytes.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. The counter is stored under
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s *Sequence) NextVal(db quorum.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db quorum.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the most recent value of the sequence without modifying
// it.
func (s *Sequence) Latest(db quorum.KVStore) (int64, []byte, error) {
	return s.increment(db, 0)
}

func (s *Sequence) increment(db quorum.KVStore, inc int64) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, errors.Wrap(err, "cannot load sequence")
	}
	val, err := DecodeSequence(raw)
	if err != nil {
		return 0, nil, err
	}
	if inc == 0 {
		return val, raw, nil
	}
	val += inc
	raw = EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(err, "cannot save sequence")
	}
	return val, raw, nil
}

// DecodeSequence converts a stored sequence value into a number. A missing
// value is zero.
func DecodeSequence(bz []byte) (int64, error) {
	if bz == nil {
		return 0, nil
	}
	if err := ValidateSequence(bz); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return int64(binary.BigEndian.Uint64(bz)), nil
}

// EncodeSequence converts a number into its 8 bytes big endian form.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// ValidateSequence returns an error if this is not an 8-byte sequence
// value.
func ValidateSequence(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	}
	if len(id) != 8 {
		return errors.Wrap(errors.ErrInvalidInput, "sequence is invalid length (expect 8 bytes)")
	}
	return nil
}
