package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("quantity", "required")

	if got := err.Error(); got != "validation: quantity: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if !err.HasField("quantity") {
		t.Fatal("HasField(quantity) = false")
	}
	if err.HasField("name") {
		t.Fatal("HasField(name) = true")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "required"},
		{Field: "quantity", Message: "must be non-negative"},
	}}

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestInsufficientStockError(t *testing.T) {
	t.Parallel()

	var err error = fmt.Errorf("use napa: %w", &InsufficientStockError{Available: 3, Requested: 10})

	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("errors.Is(err, ErrInsufficientStock) = false")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("insufficient stock must not match ErrNotFound")
	}

	var ise *InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %T", err)
	}
	if ise.Available != 3 || ise.Requested != 10 {
		t.Errorf("got available=%d requested=%d, want 3/10", ise.Available, ise.Requested)
	}
	if got := ise.Error(); got != "insufficient stock: 3 available, 10 requested" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrForbidden, ErrInsufficientStock,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
