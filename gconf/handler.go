package gconf

import (
	"reflect"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// OwnedConfig is a configuration with an owner. A configuration update
// message must be signed by the owner in order to be applied.
type OwnedConfig interface {
	Configuration
	GetOwner() quorum.Address
}

// UpdateConfigurationHandler processes configuration patch messages. The
// message must have a "Patch" field holding a configuration of the same type
// as the stored one. Zero value fields of the patch are ignored.
type UpdateConfigurationHandler struct {
	pkg string
	// Used as a template to load and patch the stored configuration.
	config OwnedConfig
	auth   x.Authenticator
}

var _ quorum.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler of configuration patch
// messages for given package. The configuration must exist, usually created
// from the genesis with InitConfig.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
		auth:   auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.patched(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	conf, err := h.patched(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return &quorum.DeliverResult{}, nil
}

// patched returns the stored configuration with the message patch applied,
// after ensuring the owner signed the transaction.
func (h UpdateConfigurationHandler) patched(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (OwnedConfig, error) {
	conf := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	owner := conf.GetOwner()
	if owner == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(conf, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "patched configuration")
	}
	return conf, nil
}

func patch(config OwnedConfig, payload OwnedConfig) error {
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType {
		return errors.Wrapf(errors.ErrMsg, "patch of type %s does not match %s", pType, cType)
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of its type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with a "Patch"
// field of the configuration type. Content of this field is returned.
func patchPayload(tx quorum.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrapf(errors.ErrInvalidInput, `%T has no "Patch" field`, msg)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
