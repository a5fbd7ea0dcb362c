package cabinet

import (
	"math"
	"time"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

const (
	maxNameLength = 200

	// maxQuantity matches the INTEGER quantity column.
	maxQuantity = math.MaxInt32
)

// Messages attached to the "quantity" field.
const (
	MsgQuantityRequired = "required"
	MsgQuantityPositive = "must be positive"
	MsgQuantityTooLarge = "must be at most 2147483647"
)

// Command is one raw chat line from a group member.
type Command struct {
	GroupID int64
	Actor   domain.Actor
	Text    string
}

// AddInput holds the parameters for adding stock.
type AddInput struct {
	GroupID   int64
	Actor     domain.Actor
	Name      string
	Quantity  *int
	Unit      string
	ExpiresAt *time.Time
	Location  *string
}

// Validate checks all fields and collects all errors.
func (i AddInput) Validate() error {
	var errs []domain.FieldError
	errs = validateName(errs, i.Name)
	if i.Quantity == nil {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: MsgQuantityRequired})
	} else {
		errs = validateQuantity(errs, *i.Quantity)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UseInput holds the parameters for consuming stock.
type UseInput struct {
	GroupID  int64
	Actor    domain.Actor
	Name     string
	Quantity int
}

// Validate checks all fields and collects all errors.
func (i UseInput) Validate() error {
	var errs []domain.FieldError
	errs = validateName(errs, i.Name)
	errs = validateQuantity(errs, i.Quantity)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SearchInput holds the parameters for a fuzzy lookup.
type SearchInput struct {
	GroupID int64
	Actor   domain.Actor
	Name    string
}

// Validate checks all fields and collects all errors.
func (i SearchInput) Validate() error {
	if errs := validateName(nil, i.Name); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteInput holds the parameters for removing a medicine.
type DeleteInput struct {
	GroupID int64
	Actor   domain.Actor
	Name    string
}

// Validate checks all fields and collects all errors.
func (i DeleteInput) Validate() error {
	if errs := validateName(nil, i.Name); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateName(errs []domain.FieldError, name string) []domain.FieldError {
	name = domain.CollapseSpaces(name)
	if name == "" {
		return append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLength {
		return append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	return errs
}

func validateQuantity(errs []domain.FieldError, qty int) []domain.FieldError {
	switch {
	case qty <= 0:
		return append(errs, domain.FieldError{Field: "quantity", Message: MsgQuantityPositive})
	case qty > maxQuantity:
		return append(errs, domain.FieldError{Field: "quantity", Message: MsgQuantityTooLarge})
	}
	return errs
}
