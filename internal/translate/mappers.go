package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// The mappers are ordered guard chains: each rule is tried top to bottom and
// the first hit wins. Order is part of the observable behavior (for example
// "amount" must be tested before "sale"), so the tables below must not be
// reordered.

type textRule struct {
	keyword string
	result  string
}

var entityRules = []textRule{
	{"customer", "customers"},
	{"product", "products"},
	{"sale", "sales"},
	{"employee", "employees"},
}

// defaultEntity is used when no entity keyword matches.
const defaultEntity = "customers"

// MapEntity maps a natural-language entity fragment to a table name.
// A trailing plural "s" is stripped before matching.
func MapEntity(entity string) string {
	entity = strings.TrimRight(strings.ToLower(entity), "s")

	for _, rule := range entityRules {
		if strings.Contains(entity, rule.keyword) {
			return rule.result
		}
	}

	return defaultEntity
}

var attributeRules = []textRule{
	{"reven", "revenue"},
	{"price", "price"},
	{"invent", "inventory"},
	{"amount", "amount"},
	{"sale", "amount"},
	{"salar", "salary"},
}

// Wildcard is the column selector meaning "no specific column".
const Wildcard = "*"

// MapAttribute maps a natural-language attribute fragment to a column name,
// falling back to the wildcard when nothing matches. The "sale" alias is for
// fragments that denote the sold amount ("total sales value").
func MapAttribute(attribute string) string {
	attribute = strings.ToLower(attribute)

	for _, rule := range attributeRules {
		if strings.Contains(attribute, rule.keyword) {
			return rule.result
		}
	}

	return Wildcard
}

// metricRules are the attribute rules minus the "sale" alias: in temporal and
// count phrasings ("what were the sales last quarter") the word names the
// entity, not a column, and must resolve to the wildcard so the translator
// emits its total-activity aggregate.
var metricRules = []textRule{
	{"reven", "revenue"},
	{"price", "price"},
	{"invent", "inventory"},
	{"amount", "amount"},
	{"salar", "salary"},
}

// MapMetric maps a metric fragment from a temporal or count phrasing to a
// column name, or the wildcard.
func MapMetric(metric string) string {
	metric = strings.ToLower(metric)

	for _, rule := range metricRules {
		if strings.Contains(metric, rule.keyword) {
			return rule.result
		}
	}

	return Wildcard
}

type windowRule struct {
	keyword string
	window  Window
}

var timeframeRules = []windowRule{
	{"day", Window{Amount: 1, Unit: "day"}},
	{"week", Window{Amount: 7, Unit: "day"}},
	{"month", Window{Amount: 1, Unit: "month"}},
	{"quarter", Window{Amount: 3, Unit: "month"}},
	{"year", Window{Amount: 1, Unit: "year"}},
}

// MapTimeframe maps a natural-language timeframe to a trailing-window
// predicate over the given temporal column, or to the always-true predicate
// when the timeframe is unrecognized.
func MapTimeframe(timeframe, column string) Predicate {
	timeframe = strings.ToLower(timeframe)

	for _, rule := range timeframeRules {
		if strings.Contains(timeframe, rule.keyword) {
			return Predicate{Kind: PredWindow, Column: column, Window: rule.window}
		}
	}

	return Predicate{Kind: PredAll}
}

type operatorRule struct {
	keyword string
	op      Operator
}

var comparisonRules = []operatorRule{
	{"below", OpLessThan},
	{"under", OpLessThan},
	{"above", OpGreaterThan},
	{"over", OpGreaterThan},
	{"equal", OpEquals},
}

// MapComparison maps a comparison phrase to an operator, defaulting to
// equality.
func MapComparison(comparison string) Operator {
	comparison = strings.ToLower(comparison)

	for _, rule := range comparisonRules {
		if strings.Contains(comparison, rule.keyword) {
			return rule.op
		}
	}

	return OpEquals
}

var digitRun = regexp.MustCompile(`\d+`)

// ExtractNumber pulls the first run of digits out of a phrase as the literal
// comparison value, defaulting to 0 when the phrase carries none. Phrases
// with several numbers resolve to the first; callers should keep timeframes
// out of the value phrase.
func ExtractNumber(phrase string) int {
	match := digitRun.FindString(phrase)
	if match == "" {
		return 0
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		// Digit run too long to represent; treat as a malformed capture.
		return 0
	}

	return n
}
