package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Owners", ErrEmpty, "at least one owner required"),
		Field("Threshold", ErrInvalidInput, "must be %d or more", 1),
		Wrap(Field("Owners.2", ErrDuplicate, ""), "wrapped"),
	)

	if errs := FieldErrors(err, "Owners"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected Owners errors: %v", errs)
	}
	if errs := FieldErrors(err, "Owners.2"); len(errs) != 1 || !ErrDuplicate.Is(errs[0]) {
		t.Fatalf("unexpected Owners.2 errors: %v", errs)
	}
	if errs := FieldErrors(err, "Epoch"); len(errs) != 0 {
		t.Fatalf("unexpected Epoch errors: %v", errs)
	}

	const want = `field "Threshold": must be 1 or more: invalid input`
	if got := FieldErrors(err, "Threshold")[0].Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFieldNil(t *testing.T) {
	if err := Field("Owners", nil, "ignored"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := AppendField(nil, "Owners", nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Append(nil, ErrEmpty, nil); err != ErrEmpty {
		t.Fatalf("single error must be returned as it is, got %v", err)
	}
	err := Append(Append(ErrEmpty, ErrNotFound), ErrDuplicate)
	if n := len(err.(unpacker).Unpack()); n != 3 {
		t.Fatalf("want a flat list of 3 errors, got %d", n)
	}
}
