package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// Initializer loads the configuration and the initial groups from the
// genesis file.
type Initializer struct{}

var _ quorum.Initializer = Initializer{}

// FromGenesis reads the optional "conf.multisig" configuration and creates
// all groups listed under the "multisig" key in order. Each group gets its
// ID from the group sequence.
func (Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, configurationPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init configuration")
	}

	var groups []struct {
		Owners    []quorum.Address `json:"owners"`
		Threshold uint32           `json:"threshold"`
	}
	if err := opts.ReadOptions("multisig", &groups); err != nil {
		return err
	}
	ctrl := NewController(nil)
	for i, g := range groups {
		if _, err := ctrl.CreateGroup(db, g.Owners, g.Threshold); err != nil {
			return errors.Wrapf(err, "cannot create #%d group", i)
		}
	}
	return nil
}
