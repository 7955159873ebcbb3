package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/quorum/errors"
)

// recorder implements Tester and only records a failure.
type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {value: nil},
		"nil error":       {value: (*errors.Error)(nil)},
		"nil slice":       {value: []byte(nil)},
		"error":           {value: errors.ErrEmpty, wantFail: true},
		"non nillable":    {value: 42, wantFail: true},
		"non empty slice": {value: []byte("a"), wantFail: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []uint32{1, 2}, []uint32{1, 2})
	if r.failed {
		t.Fatal("equal values")
	}
	Equal(&r, uint32(1), 1)
	if !r.failed {
		t.Fatal("different types must not be equal")
	}
}

func TestPanics(t *testing.T) {
	var r recorder
	Panics(&r, func() { panic("boom") })
	if r.failed {
		t.Fatal("panic was expected")
	}
	Panics(&r, func() {})
	if !r.failed {
		t.Fatal("function did not panic")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrEmpty, errors.ErrEmpty)
	IsErr(t, errors.ErrEmpty, errors.Wrap(errors.ErrEmpty, "owners"))
	IsErr(t, nil, nil)

	err := fmt.Errorf("stdlib")
	IsErr(t, err, err)
}

func TestFieldError(t *testing.T) {
	err := errors.Append(
		errors.Field("Owners", errors.ErrEmpty, "required"),
		errors.Field("Threshold", errors.ErrInvalidInput, "too high"),
	)
	FieldError(t, err, "Owners", errors.ErrEmpty)
	FieldError(t, err, "Threshold", errors.ErrInvalidInput)
	FieldError(t, err, "Epoch", nil)
}
