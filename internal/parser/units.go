package parser

import (
	"strings"

	"github.com/heartmarshall/medicabinet-backend/internal/domain"
)

var unitSynonyms = map[string]string{
	"tablet":      "tablets",
	"tablets":     "tablets",
	"tab":         "tablets",
	"tabs":        "tablets",
	"capsule":     "capsules",
	"capsules":    "capsules",
	"cap":         "capsules",
	"caps":        "capsules",
	"ml":          "ml",
	"milliliter":  "ml",
	"milliliters": "ml",
	"mg":          "mg",
	"milligram":   "mg",
	"milligrams":  "mg",
	"strip":       "strips",
	"strips":      "strips",
	"bottle":      "bottles",
	"bottles":     "bottles",
	"piece":       "pieces",
	"pieces":      "pieces",
	"pcs":         "pieces",
	"pc":          "pieces",
}

// NormalizeUnit maps a unit token to its canonical form. Unrecognized or
// empty tokens become domain.DefaultUnit.
func NormalizeUnit(unit string) string {
	if u, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return u
	}
	return domain.DefaultUnit
}
