package multisig

import (
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// configurationPkg is the name under which the configuration is stored.
const configurationPkg = "multisig"

// Validate ensures the configuration is in a consistent state.
func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.MaxOwners > MaxOwners {
		errs = errors.AppendField(errs, "MaxOwners",
			errors.Wrapf(errors.ErrInvalidInput, "must not be greater than %d", MaxOwners))
	}
	return errs
}

// maxOwners returns the group size limit declared by the configuration.
func (c *Configuration) maxOwners() int {
	if c == nil || c.MaxOwners == 0 {
		return MaxOwners
	}
	return int(c.MaxOwners)
}

// loadMaxOwners returns the current group size limit. When no configuration
// was stored the hard limit is used.
func loadMaxOwners(db gconf.ReadStore) (int, error) {
	var c Configuration
	switch err := gconf.Load(db, configurationPkg, &c); {
	case err == nil:
		return c.maxOwners(), nil
	case errors.ErrNotFound.Is(err):
		return MaxOwners, nil
	default:
		return 0, errors.Wrap(err, "load configuration")
	}
}
