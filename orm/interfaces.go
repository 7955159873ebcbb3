package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

// Object is what is stored in the bucket. Key is joined with the bucket
// prefix to build the full database key. Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	// Validate returns an error if the object is not in a valid state
	// to be saved.
	x.Validater
	Value() quorum.Persistent
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db quorum.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a Value that can be embedded in a SimpleObj.
type CloneableData interface {
	x.Validater
	quorum.Persistent
	Copy() CloneableData
}

// Model is implemented by any entity that can be stored using ModelBucket.
// It is the same interface as CloneableData.
type Model = CloneableData
