package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrItemAlreadyExists, "item already exists"},
		{ErrInvalidItemName, "invalid item name"},
		{ErrInvalidPrice, "invalid price"},
		{ErrInvalidListQuery, "invalid list query"},
	}
	for _, tt := range tests {
		if tt.err == nil {
			t.Fatalf("sentinel for %q must not be nil", tt.want)
		}
		if tt.err.Error() != tt.want {
			t.Fatalf("unexpected message: %q", tt.err.Error())
		}
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{ErrItemNotFound, ErrItemAlreadyExists, ErrInvalidItemName, ErrInvalidPrice, ErrInvalidListQuery}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v must not match %v", a, b)
			}
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidPrice, errors.New("negative"))
	if !errors.Is(wrapped2, ErrInvalidPrice) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidPrice")
	}
}
