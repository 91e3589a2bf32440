// Package translate rewrites free-text analytics questions into structured
// intermediate queries. It hosts the ordered pattern dispatcher, the
// natural-language-to-schema mappers, the per-shape translators, and the
// pre-flight validator and explanation builder that consume the same stage.
package translate

import (
	"fmt"
	"strings"
)

// Kind tags the query shape that produced a structured query.
type Kind string

const (
	KindRanking     Kind = "ranking"
	KindTemporal    Kind = "temporal"
	KindFilter      Kind = "filter"
	KindCount       Kind = "count"
	KindComparison  Kind = "comparison"
	KindAggregation Kind = "aggregation"
	KindFallback    Kind = "fallback"
)

// Operator is a comparison operator in a predicate.
type Operator string

const (
	OpEquals      Operator = "="
	OpLessThan    Operator = "<"
	OpGreaterThan Operator = ">"
)

// Direction orders a result set.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Aggregate is an aggregation function over a column.
type Aggregate string

const (
	AggNone  Aggregate = ""
	AggSum   Aggregate = "SUM"
	AggAvg   Aggregate = "AVG"
	AggCount Aggregate = "COUNT"
)

// PredicateKind discriminates the predicate variants.
type PredicateKind int

const (
	// PredNone means the query carries no predicate at all.
	PredNone PredicateKind = iota
	// PredAll is the always-true predicate (unrecognized timeframe).
	PredAll
	// PredCompare filters a column against a numeric literal.
	PredCompare
	// PredWindow restricts a temporal column to a trailing window.
	PredWindow
	// PredText marks the fallback query, keyed by the raw input text.
	PredText
)

// Window is a trailing relative-time span, e.g. the last 3 months.
type Window struct {
	Amount int
	Unit   string // "day", "month", "year"
}

// Predicate restricts which rows a query addresses.
type Predicate struct {
	Kind   PredicateKind
	Column string
	Op     Operator
	Value  int
	Window Window
	Text   string
}

// Query is the structured translation target. Every translator produces one
// and the mock executor consumes it directly; natural language is never
// re-parsed downstream.
type Query struct {
	Kind      Kind
	Table     string
	Column    string // column name or "*"
	Predicate Predicate
	OrderBy   string
	Order     Direction
	Limit     int
	Aggregate Aggregate
	AggColumn string

	// Compare carries the second side of a comparison query so the two
	// resolved (table, metric) pairs can be reported side by side.
	Compare *Query
}

// HasAggregate reports whether the query computes an aggregate scalar.
func (q Query) HasAggregate() bool {
	return q.Aggregate != AggNone
}

// HasOrdering reports whether the query asks for a ranked result.
func (q Query) HasOrdering() bool {
	return q.OrderBy != ""
}

// HasPredicate reports whether the query filters rows.
func (q Query) HasPredicate() bool {
	return q.Predicate.Kind != PredNone
}

// String renders the query in a pseudo-SQL form for display. The rendering
// is purely informational; execution never parses it back.
func (q Query) String() string {
	var b strings.Builder

	b.WriteString("SELECT ")

	switch {
	case q.HasAggregate():
		fmt.Fprintf(&b, "%s(%s)", q.Aggregate, q.AggColumn)
	case q.Column == "" || q.Column == "*":
		b.WriteString("*")
	default:
		b.WriteString(q.Column)
	}

	fmt.Fprintf(&b, " FROM %s", q.Table)

	if cond := q.Predicate.render(); cond != "" {
		fmt.Fprintf(&b, " WHERE %s", cond)
	}

	if q.HasOrdering() {
		fmt.Fprintf(&b, " ORDER BY %s %s", q.OrderBy, q.Order)
	}

	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}

	if q.Compare != nil {
		b.WriteString(" ; ")
		b.WriteString(q.Compare.String())
	}

	return b.String()
}

func (p Predicate) render() string {
	switch p.Kind {
	case PredAll:
		return "1=1"
	case PredCompare:
		return fmt.Sprintf("%s %s %d", p.Column, p.Op, p.Value)
	case PredWindow:
		if p.Amount() == 1 && p.Window.Unit == "day" {
			return fmt.Sprintf("%s = date('now', '-1 day')", p.Column)
		}

		return fmt.Sprintf("%s >= date('now', '-%d %s')", p.Column, p.Window.Amount, p.Window.Unit)
	case PredText:
		return fmt.Sprintf("query='%s'", p.Text)
	default:
		return ""
	}
}

// Amount returns the window size for window predicates, 0 otherwise.
func (p Predicate) Amount() int {
	if p.Kind != PredWindow {
		return 0
	}

	return p.Window.Amount
}
