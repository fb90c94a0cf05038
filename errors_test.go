package downmix

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	expected := []string{
		"no error",
		"unknown channel layout",
		"channel layout not representable",
		"channel balance undefined (left and right weights sum to zero)",
		"channel not part of the layout",
		"no channel layout selected",
	}
	for i, want := range expected {
		if got := Error(i).Error(); got != want {
			t.Errorf("Error(%d).Error() = %q, want %q", i, got, want)
		}
	}
	if got := Error(99).Error(); got != "unknown error" {
		t.Errorf("Error(99).Error() = %q, want %q", got, "unknown error")
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err  Error
		code int
	}{
		{ErrNone, 0},
		{ErrUnknownLayout, 1},
		{ErrUnrepresentableLayout, 2},
		{ErrBalanceUndefined, 3},
		{ErrUnknownChannel, 4},
		{ErrNoLayout, 5},
	}
	for _, tt := range tests {
		if int(tt.err) != tt.code {
			t.Errorf("code of %v = %d, want %d", tt.err, int(tt.err), tt.code)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrUnknownLayout, "bogus")
	if !errors.Is(err, ErrUnknownLayout) {
		t.Error("wrapped ErrUnknownLayout not matched by errors.Is")
	}
	if errors.Is(err, ErrUnrepresentableLayout) {
		t.Error("wrapped ErrUnknownLayout matched the wrong code")
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := Resolve("bogus"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("Resolve(bogus) = %v, want ErrUnknownLayout", err)
	}
	if _, err := Resolve("7.1(wide)"); !errors.Is(err, ErrUnrepresentableLayout) {
		t.Errorf("Resolve(7.1(wide)) = %v, want ErrUnrepresentableLayout", err)
	}
	if _, err := Resolve("5.1"); err != nil {
		t.Errorf("Resolve(5.1) = %v, want nil", err)
	}
}
