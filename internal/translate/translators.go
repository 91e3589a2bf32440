package translate

import (
	"strconv"
)

// Every translator is a pure function of its captured fragments: identical
// fragments always yield an identical structured query.

// translateRanking handles "show me the top 5 customers by revenue".
// Captures: direction, limit, entity, metric.
func translateRanking(groups []string) Query {
	direction, rawLimit, entity, metric := groups[0], groups[1], groups[2], groups[3]

	order := Descending
	if direction == "bottom" {
		order = Ascending
	}

	// A limit that fails to parse is a malformed capture, absorbed by
	// falling back to the default rather than failing the request.
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	column := MapAttribute(metric)

	return Query{
		Kind:    KindRanking,
		Table:   MapEntity(entity),
		Column:  column,
		OrderBy: column,
		Order:   order,
		Limit:   limit,
	}
}

// translateTemporal handles "what were the sales last quarter".
// Captures: metric, timeframe. A metric that resolves to the wildcard means
// "total activity" and becomes a sum over the amount column.
func translateTemporal(groups []string) Query {
	metric, timeframe := groups[0], groups[1]

	q := Query{
		Kind:      KindTemporal,
		Table:     MapEntity(metric),
		Predicate: MapTimeframe(timeframe, "date"),
	}

	if column := MapMetric(metric); column == Wildcard {
		q.Aggregate = AggSum
		q.AggColumn = "amount"
	} else {
		q.Column = column
	}

	return q
}

// translateFilter handles "list products with inventory below 100 units".
// Captures: entity, attribute, operator keyword, value phrase.
func translateFilter(groups []string) Query {
	entity, attribute, keyword, value := groups[0], groups[1], groups[2], groups[3]

	column := MapAttribute(attribute)

	return Query{
		Kind:   KindFilter,
		Table:  MapEntity(entity),
		Column: Wildcard,
		Predicate: Predicate{
			Kind:   PredCompare,
			Column: column,
			Op:     MapComparison(keyword),
			Value:  ExtractNumber(value),
		},
	}
}

// translateCount handles "how many sales were there last month": the
// temporal shape wrapped in a count aggregate.
func translateCount(groups []string) Query {
	metric, timeframe := groups[0], groups[1]

	column := MapMetric(metric)
	if column == Wildcard {
		column = "amount"
	}

	return Query{
		Kind:      KindCount,
		Table:     MapEntity(metric),
		Predicate: MapTimeframe(timeframe, "date"),
		Aggregate: AggCount,
		AggColumn: column,
	}
}

// translateComparison handles "compare customers and products by revenue".
// Both sides are resolved independently for side-by-side reporting.
func translateComparison(groups []string) Query {
	left, right, metric := groups[0], groups[1], groups[2]

	column := MapAttribute(metric)

	return Query{
		Kind:   KindComparison,
		Table:  MapEntity(left),
		Column: column,
		Compare: &Query{
			Kind:   KindComparison,
			Table:  MapEntity(right),
			Column: column,
		},
	}
}

// translateAggregation handles "what is the average salary for employees".
// Captures: metric, entity.
func translateAggregation(groups []string) Query {
	metric, entity := groups[0], groups[1]

	column := MapAttribute(metric)
	if column == Wildcard {
		column = "amount"
	}

	return Query{
		Kind:      KindAggregation,
		Table:     MapEntity(entity),
		Aggregate: AggAvg,
		AggColumn: column,
	}
}
