package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. A single error is returned
// unchanged. Otherwise a multi error containing all of them is returned and
// Is reports true for every member.
func Append(errs ...error) error {
	var all multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			all = append(all, m...)
			continue
		}
		all = append(all, e)
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return all
	}
}

type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (errs multiErr) Unpack() []error {
	return errs
}
