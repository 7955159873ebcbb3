package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace carried by err or any error it
// wraps. It returns nil if none is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}

// firstFrame returns "file:line" of the code that wrapped the error first.
func firstFrame(err error) string {
	st := stackTrace(err)
	if len(st) == 0 {
		return ""
	}
	// The top frame belongs to this package.
	f := st[0]
	if len(st) > 1 {
		f = st[1]
	}
	return fmt.Sprintf("%s:%d", f, f)
}
