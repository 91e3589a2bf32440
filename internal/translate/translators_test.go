package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateRanking(t *testing.T) {
	translator := NewTranslator()

	t.Run("top customers by revenue", func(t *testing.T) {
		q := translator.Translate("show me the top 5 customers by revenue")

		assert.Equal(t, KindRanking, q.Kind)
		assert.Equal(t, "customers", q.Table)
		assert.Equal(t, "revenue", q.Column)
		assert.Equal(t, "revenue", q.OrderBy)
		assert.Equal(t, Descending, q.Order)
		assert.Equal(t, 5, q.Limit)
		assert.False(t, q.HasPredicate())
		assert.Equal(t, "SELECT revenue FROM customers ORDER BY revenue DESC LIMIT 5", q.String())
	})

	t.Run("bottom orders ascending", func(t *testing.T) {
		q := translator.Translate("show me the bottom 3 employees by salary")

		assert.Equal(t, "employees", q.Table)
		assert.Equal(t, "salary", q.OrderBy)
		assert.Equal(t, Ascending, q.Order)
		assert.Equal(t, 3, q.Limit)
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		q := translator.Translate("show me the top 0 customers by revenue")
		assert.Equal(t, defaultLimit, q.Limit)
	})

	t.Run("unknown metric orders by wildcard", func(t *testing.T) {
		q := translator.Translate("show me the top 5 customers by charisma")
		assert.Equal(t, Wildcard, q.Column)
		assert.Equal(t, Wildcard, q.OrderBy)
	})
}

func TestTranslateTemporal(t *testing.T) {
	translator := NewTranslator()

	t.Run("sales last quarter sums amount", func(t *testing.T) {
		q := translator.Translate("what were the sales last quarter")

		assert.Equal(t, KindTemporal, q.Kind)
		assert.Equal(t, "sales", q.Table)
		assert.Equal(t, AggSum, q.Aggregate)
		assert.Equal(t, "amount", q.AggColumn)

		require.Equal(t, PredWindow, q.Predicate.Kind)
		assert.Equal(t, "date", q.Predicate.Column)
		assert.Equal(t, Window{Amount: 3, Unit: "month"}, q.Predicate.Window)
		assert.Equal(t, "SELECT SUM(amount) FROM sales WHERE date >= date('now', '-3 month')", q.String())
	})

	t.Run("named metric selects the column", func(t *testing.T) {
		q := translator.Translate("what was the revenue last month")

		assert.Equal(t, AggNone, q.Aggregate)
		assert.Equal(t, "revenue", q.Column)
		assert.Equal(t, Window{Amount: 1, Unit: "month"}, q.Predicate.Window)
	})

	t.Run("single day renders as equality", func(t *testing.T) {
		q := translator.Translate("what were the sales this day")
		assert.Contains(t, q.String(), "date = date('now', '-1 day')")
	})

	t.Run("unknown timeframe is always true", func(t *testing.T) {
		q := translator.Translate("what were the sales last fortnight")
		assert.Equal(t, PredAll, q.Predicate.Kind)
		assert.Contains(t, q.String(), "WHERE 1=1")
	})
}

func TestTranslateFilter(t *testing.T) {
	translator := NewTranslator()

	t.Run("inventory below threshold", func(t *testing.T) {
		q := translator.Translate("list products with inventory below 100 units")

		assert.Equal(t, KindFilter, q.Kind)
		assert.Equal(t, "products", q.Table)
		assert.Equal(t, Wildcard, q.Column)

		require.Equal(t, PredCompare, q.Predicate.Kind)
		assert.Equal(t, "inventory", q.Predicate.Column)
		assert.Equal(t, OpLessThan, q.Predicate.Op)
		assert.Equal(t, 100, q.Predicate.Value)
		assert.Equal(t, "SELECT * FROM products WHERE inventory < 100", q.String())
	})

	t.Run("operator keyword drives the comparison", func(t *testing.T) {
		tests := []struct {
			input string
			op    Operator
		}{
			{input: "list customers with revenue above 5000 dollars", op: OpGreaterThan},
			{input: "list customers with revenue over 5000 dollars", op: OpGreaterThan},
			{input: "list customers with revenue under 5000 dollars", op: OpLessThan},
			{input: "list products with price equals to 20 dollars", op: OpEquals},
		}

		for _, tt := range tests {
			q := translator.Translate(tt.input)
			require.Equal(t, KindFilter, q.Kind, "input %q", tt.input)
			assert.Equal(t, tt.op, q.Predicate.Op, "input %q", tt.input)
		}
	})

	t.Run("value phrase without digits is zero", func(t *testing.T) {
		q := translator.Translate("list products with price below nothing")
		assert.Equal(t, 0, q.Predicate.Value)
	})
}

func TestTranslateCount(t *testing.T) {
	translator := NewTranslator()

	q := translator.Translate("how many sales were there last month")

	assert.Equal(t, KindCount, q.Kind)
	assert.Equal(t, "sales", q.Table)
	assert.Equal(t, AggCount, q.Aggregate)
	assert.Equal(t, "amount", q.AggColumn)
	assert.Equal(t, Window{Amount: 1, Unit: "month"}, q.Predicate.Window)
}

func TestTranslateComparison(t *testing.T) {
	translator := NewTranslator()

	q := translator.Translate("compare customers and products by revenue")

	assert.Equal(t, KindComparison, q.Kind)
	assert.Equal(t, "customers", q.Table)
	assert.Equal(t, "revenue", q.Column)

	require.NotNil(t, q.Compare)
	assert.Equal(t, "products", q.Compare.Table)
	assert.Equal(t, "revenue", q.Compare.Column)
	assert.Nil(t, q.Compare.Compare)

	assert.Equal(t, "SELECT revenue FROM customers ; SELECT revenue FROM products", q.String())
}

func TestTranslateAggregation(t *testing.T) {
	translator := NewTranslator()

	t.Run("average salary for employees", func(t *testing.T) {
		q := translator.Translate("what is the average salary for employees")

		assert.Equal(t, KindAggregation, q.Kind)
		assert.Equal(t, "employees", q.Table)
		assert.Equal(t, AggAvg, q.Aggregate)
		assert.Equal(t, "salary", q.AggColumn)
		assert.Equal(t, "SELECT AVG(salary) FROM employees", q.String())
	})

	t.Run("unresolved metric averages amount", func(t *testing.T) {
		q := translator.Translate("what is the average throughput for sales")
		assert.Equal(t, "amount", q.AggColumn)
		assert.Equal(t, "sales", q.Table)
	})
}
