package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the code of a result that carries no error.
	SuccessABCICode = 0

	// Errors that were not created from a registered root error are
	// reported with the internal code and a generic log message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo converts an error into a code and log pair that can be returned
// to a client. Errors that do not wrap a registered root error are internal
// and, unless debug is set, their message is hidden.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the ABCI code of the first error in the cause chain that
// provides one.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		if u, ok := err.(unpacker); ok {
			// A multi error is reported with the code of its
			// first member.
			if errs := u.Unpack(); len(errs) > 0 {
				err = errs[0]
				continue
			}
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}

// Redact replaces internal errors and recovered panics with a generic error
// so that implementation details are not leaked to a client.
//
// When debug is set the error is returned unchanged.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
