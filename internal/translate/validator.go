package translate

import (
	"strings"

	"github.com/querysim/querysim/internal/schema"
)

// Validator runs the pre-flight feasibility checks: pattern match, entity
// presence, and measurable-attribute presence. The checks are independent
// and never short-circuit; each failure contributes one reason and one
// suggestion.
type Validator struct {
	translator  *Translator
	entities    []string
	measurables []string
}

// NewValidator builds a validator over the given dispatcher and catalog.
func NewValidator(t *Translator, registry *schema.Registry) *Validator {
	return &Validator{
		translator:  t,
		entities:    registry.TableNames(),
		measurables: registry.Measurables(),
	}
}

// Validation is the outcome of the three feasibility checks. Suggestions is
// nil, not empty, when the query is valid.
type Validation struct {
	Valid       bool
	Reasons     []string
	Suggestions []string
}

// Validate checks whether the text could be processed meaningfully.
func (v *Validator) Validate(text string) Validation {
	lowered := strings.ToLower(text)

	var reasons, suggestions []string

	if _, ok := v.translator.Match(text); !ok {
		reasons = append(reasons, "Query doesn't match any known patterns")
		suggestions = append(suggestions,
			"Try using more structured queries like 'Show top X by Y' or 'List A with B under C'")
	}

	if !containsAny(lowered, v.entities) {
		reasons = append(reasons,
			"No known data entities (customers, products, sales, etc.) detected in query")
		suggestions = append(suggestions,
			"Try mentioning specific data entities like 'customers', 'products', or 'sales'")
	}

	if !containsAny(lowered, v.measurables) {
		reasons = append(reasons, "No measurable attributes detected in query")
		suggestions = append(suggestions,
			"Try including measurable attributes like 'revenue', 'price', or 'inventory'")
	}

	if len(reasons) > 0 {
		return Validation{Valid: false, Reasons: reasons, Suggestions: suggestions}
	}

	return Validation{Valid: true, Reasons: []string{}}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}
