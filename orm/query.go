package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// queryPrefix returns all models stored under keys starting with prefix.
func queryPrefix(db quorum.ReadOnlyKVStore, prefix []byte) ([]quorum.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(it)
}

// consumeIterator reads all remaining models and releases the iterator.
func consumeIterator(it quorum.Iterator) ([]quorum.Model, error) {
	defer it.Release()

	var res []quorum.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, quorum.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// consumeIteratorKeys returns all keys the iterator returns and releases
// it. Use it only when the result is known to be small.
func consumeIteratorKeys(it quorum.Iterator) ([][]byte, error) {
	defer it.Release()

	var keys [][]byte
	for {
		key, _, err := it.Next()
		switch {
		case err == nil:
			keys = append(keys, key)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return nil, err
		}
	}
}

// prefixRange turns a prefix into a (start, end) range. The end is nil if
// the prefix consists of 0xFF bytes only.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
