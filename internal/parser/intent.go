// Package parser turns short free-form chat lines ("+Napa 10", "Took some
// paracetamol", "?all") into structured intents. It performs no I/O.
package parser

import "time"

// Kind tags the command family of an Intent.
type Kind string

const (
	KindAdd     Kind = "add"
	KindUse     Kind = "use"
	KindSearch  Kind = "search"
	KindList    Kind = "list"
	KindUnknown Kind = "unknown"
)

func (k Kind) String() string { return string(k) }

// Intent is the structured result of classifying one line of text.
// It is produced fresh per message and never persisted.
type Intent struct {
	Kind       Kind
	Name       string // title-cased; empty when the command names no medicine
	Quantity   *int
	Unit       string
	ExpiresAt  *time.Time
	Location   *string
	Confidence float64
	RawText    string
}

// HasName reports whether a medicine name was extracted.
func (i Intent) HasName() bool { return i.Name != "" }

// QuantityOr returns the extracted quantity, or def when none was given.
func (i Intent) QuantityOr(def int) int {
	if i.Quantity == nil {
		return def
	}
	return *i.Quantity
}

func intPtr(n int) *int { return &n }
