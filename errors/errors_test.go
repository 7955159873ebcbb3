package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"successful comparison to a twice wrapped error": {
			a:      ErrUnauthorized,
			b:      Wrapf(Wrap(ErrUnauthorized, "inner"), "outer %d", 2),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*Error)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
		"multi error contains the error": {
			a:      ErrEmpty,
			b:      Append(ErrNotFound, Wrap(ErrEmpty, "owners")),
			wantIs: true,
		},
		"multi error does not contain the error": {
			a:      ErrDuplicate,
			b:      Append(ErrNotFound, ErrEmpty),
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "test"); err != nil {
		t.Fatal("wrapping nil must return nil")
	}
	if err := Wrapf(nil, "test %d", 1); err != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(Wrap(ErrNotFound, "group"), "proposal %d", 7)
	const want = "proposal 7: group: not found"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestStackTrace(t *testing.T) {
	err := Wrap(ErrDuplicate, "owner")

	if st := stackTrace(err); len(st) == 0 {
		t.Fatal("stack trace not attached")
	}

	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("full format does not contain the stack trace: %s", full)
	}

	short := fmt.Sprintf("%v", err)
	if !strings.HasPrefix(short, "owner: duplicate [") {
		t.Fatalf("unexpected short format: %s", short)
	}

	if got := fmt.Sprintf("%s", err); got != "owner: duplicate" {
		t.Fatalf("unexpected message format: %s", got)
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering a used code must panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "another not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestWithType(t *testing.T) {
	type group struct{}
	err := WithType(ErrInvalidType, group{})
	if !ErrInvalidType.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "errors.group") {
		t.Fatalf("type name not in the message: %s", err)
	}
}
