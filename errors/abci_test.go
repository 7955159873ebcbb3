package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain quorum error": {
			err:      ErrUnauthorized,
			wantCode: ErrUnauthorized.code,
			wantLog:  "unauthorized",
		},
		"wrapped quorum error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantCode: ErrNotFound.code,
			wantLog:  "bar: foo: not found",
		},
		"nil is empty message": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"nil quorum error is not an error": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib in debug mode is exposed": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "stdlib error",
		},
		"multi error takes the first code": {
			err:      Append(ErrEmpty, ErrNotFound),
			wantCode: ErrEmpty.code,
			wantLog:  "value is empty; not found",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("panic must be redacted")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("debug mode must not redact")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("registered errors are not redacted")
	}
	if err := Redact(fmt.Errorf("secret"), false); err.Error() != internalABCILog {
		t.Errorf("stdlib error must be redacted, got %q", err)
	}
}
