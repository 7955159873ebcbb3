package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/quorum/errors"
)

// ascendBtree returns a snapshot of all items within [start, end) in
// ascending order. A nil bound is open.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var res []keyer
	collect := func(item btree.Item) bool {
		res = append(res, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return res
}

// descendBtree returns a snapshot of all items within [start, end) in
// descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	asc := ascendBtree(bt, start, end)
	for i, j := 0, len(asc)-1; i < j; i, j = i+1, j-1 {
		asc[i], asc[j] = asc[j], asc[i]
	}
	return asc
}

// mergeIterator combines cached items with the iterator of the backing
// store. Cached items shadow parent entries with the same key and deleted
// items hide them.
type mergeIterator struct {
	items   []keyer
	parent  Iterator
	reverse bool

	// Parent entry read ahead, if any.
	pKey, pValue []byte
	pHas, pDone  bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

// before returns true if key a comes before key b in the iteration order.
func (m *mergeIterator) before(a, b []byte) bool {
	if m.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

// peekParent makes sure the next parent entry is loaded.
func (m *mergeIterator) peekParent() error {
	if m.pDone || m.pHas {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.pDone = true
		return nil
	case err != nil:
		return err
	}
	m.pKey, m.pValue, m.pHas = key, value, true
	return nil
}

func (m *mergeIterator) popParent() (key, value []byte) {
	key, value = m.pKey, m.pValue
	m.pKey, m.pValue, m.pHas = nil, nil, false
	return key, value
}

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.peekParent(); err != nil {
			return nil, nil, err
		}

		if len(m.items) == 0 {
			if m.pDone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			key, value := m.popParent()
			return key, value, nil
		}

		item := m.items[0]
		if !m.pDone && m.before(m.pKey, item.Key()) {
			key, value := m.popParent()
			return key, value, nil
		}

		// The cached item wins. A parent entry with the same key is
		// shadowed.
		m.items = m.items[1:]
		if !m.pDone && bytes.Equal(m.pKey, item.Key()) {
			m.popParent()
		}
		if s, ok := item.(setItem); ok {
			return s.Key(), s.value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.items = nil
	m.parent.Release()
}
