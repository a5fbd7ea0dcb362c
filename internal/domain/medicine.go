package domain

import (
	"time"
)

// DefaultUnit is used when a command names no unit or an unrecognized one.
const DefaultUnit = "tablets"

// Actor identifies the chat user performing a command.
type Actor struct {
	ID   int64
	Name string
}

// Medicine is a stock record owned by a single group.
// (GroupID, lower(Name)) is unique; Quantity is never negative.
type Medicine struct {
	ID            int64
	GroupID       int64
	Name          string
	Quantity      int
	Unit          string
	ExpiresAt     *time.Time
	Location      *string
	CreatedByID   int64
	CreatedByName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock reports whether quantity is strictly below threshold.
func (m *Medicine) IsLowStock(threshold int) bool {
	return m.Quantity < threshold
}

// IsOutOfStock reports whether nothing is left.
func (m *Medicine) IsOutOfStock() bool {
	return m.Quantity == 0
}

// DaysUntilExpiry returns whole days between now and the expiry date
// (negative once expired). ok is false when no expiry is recorded.
func (m *Medicine) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if m.ExpiresAt == nil {
		return 0, false
	}
	return int(m.ExpiresAt.Sub(now).Hours() / 24), true
}

// ExpiresWithin reports whether the medicine has an expiry date no later
// than now+days. Already expired medicines are included.
func (m *Medicine) ExpiresWithin(now time.Time, days int) bool {
	if m.ExpiresAt == nil {
		return false
	}
	return !m.ExpiresAt.After(now.AddDate(0, 0, days))
}

// MedicineInput carries the fields of an add command.
type MedicineInput struct {
	GroupID   int64
	Name      string
	Quantity  int
	Unit      string
	ExpiresAt *time.Time
	Location  *string
	Actor     Actor
}

// Validate checks all fields and collects all errors.
func (in MedicineInput) Validate() error {
	var errs []FieldError
	if NormalizeName(in.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if len(in.Name) > 200 {
		errs = append(errs, FieldError{Field: "name", Message: "max 200 characters"})
	}
	if in.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// MedicineMatch pairs a medicine with its fuzzy score against a query.
type MedicineMatch struct {
	Medicine Medicine
	Score    int
}
