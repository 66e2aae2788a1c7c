package cryptoerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := New(MessageTooLarge, "mprsa.Encrypt", "m >= n")
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected errors.Is to match MessageTooLarge sentinel")
	}
	if errors.Is(err, ErrBadKeySize) {
		t.Fatalf("did not expect errors.Is to match a different kind")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("no inverse exists")
	err := Wrap(InternalInvariantViolated, "mprsa.Decrypt", "modular inverse", cause)
	if !errors.Is(err, ErrInternalInvariantViolated) {
		t.Fatalf("expected kind match")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to see through to the wrapped cause")
	}
}

func TestKindString(t *testing.T) {
	if MalformedKey.String() != "malformed key" {
		t.Fatalf("unexpected Kind string: %q", MalformedKey.String())
	}
}
