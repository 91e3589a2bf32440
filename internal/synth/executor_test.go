package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querysim/querysim/internal/errors"
	"github.com/querysim/querysim/internal/schema"
	"github.com/querysim/querysim/internal/translate"
)

const testSeed = 42

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	return New(schema.Default(), testSeed)
}

func TestExecute_AggregateStrategy(t *testing.T) {
	e := newTestExecutor(t)
	translator := translate.NewTranslator()

	q := translator.Translate("what were the sales last quarter")

	rows, err := e.Execute(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"sum(amount)"}, rows[0].Columns())

	v, ok := rows[0].Get("sum(amount)")
	require.True(t, ok)

	n, ok := v.(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, n, 1000)
	assert.Less(t, n, 100000)
}

func TestExecute_RankedStrategy(t *testing.T) {
	e := newTestExecutor(t)
	translator := translate.NewTranslator()

	q := translator.Translate("show me the top 5 customers by revenue")

	rows, err := e.Execute(q)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	for _, row := range rows {
		assert.Equal(t,
			[]string{"id", "name", "email", "revenue", "region", "join_date"},
			row.Columns())
	}
}

func TestExecute_FilteredStrategy(t *testing.T) {
	e := newTestExecutor(t)
	translator := translate.NewTranslator()

	q := translator.Translate("list products with inventory below 100 units")

	for i := 0; i < 50; i++ {
		rows, err := e.Execute(q)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(rows), 1)
		assert.LessOrEqual(t, len(rows), 10)
	}
}

func TestExecute_ComparisonUsesDefaultStrategy(t *testing.T) {
	e := newTestExecutor(t)
	translator := translate.NewTranslator()

	// No aggregate, no ordering, no predicate: fixed five rows from the left
	// side's table.
	q := translator.Translate("compare customers and products by revenue")

	rows, err := e.Execute(q)
	require.NoError(t, err)
	assert.Len(t, rows, 5)

	_, ok := rows[0].Get("revenue")
	assert.True(t, ok)
}

func TestExecute_FallbackEchoesQuery(t *testing.T) {
	e := newTestExecutor(t)
	translator := translate.NewTranslator()

	q := translator.Translate("tell me a story")

	rows, err := e.Execute(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"result", "query"}, rows[0].Columns())

	result, _ := rows[0].Get("result")
	assert.Equal(t, "Mock data for query", result)

	rendered, _ := rows[0].Get("query")
	assert.Equal(t, q.String(), rendered)
}

func TestExecute_UnknownTable(t *testing.T) {
	e := newTestExecutor(t)

	_, err := e.Execute(translate.Query{Kind: translate.KindFilter, Table: "orders",
		Predicate: translate.Predicate{Kind: translate.PredAll}})

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeRegistry))
}

func TestSynthesize_ColumnValues(t *testing.T) {
	e := newTestExecutor(t)

	rows, err := e.Synthesize("sales", 20)
	require.NoError(t, err)
	require.Len(t, rows, 20)

	for _, row := range rows {
		id, _ := row.Get("id")
		assert.GreaterOrEqual(t, id.(int), 1)
		assert.LessOrEqual(t, id.(int), 1000)

		fk, _ := row.Get("product_id")
		assert.GreaterOrEqual(t, fk.(int), 1)
		assert.LessOrEqual(t, fk.(int), 50)

		date, _ := row.Get("date")
		assert.Regexp(t, `^2023-\d{2}-\d{2}$`, date)
	}

	// Columns without a generator come back as the empty placeholder.
	rows, err = e.Synthesize("employees", 1)
	require.NoError(t, err)

	dept, ok := rows[0].Get("department")
	require.True(t, ok)
	assert.Equal(t, "", dept)
}

func TestExecutor_SeededDeterminism(t *testing.T) {
	a := New(schema.Default(), testSeed)
	b := New(schema.Default(), testSeed)

	q := translate.NewTranslator().Translate("show me the top 5 customers by revenue")

	rowsA, err := a.Execute(q)
	require.NoError(t, err)
	rowsB, err := b.Execute(q)
	require.NoError(t, err)

	assert.Equal(t, rowsA, rowsB)
}
