package synth

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/querysim/querysim/internal/errors"
	"github.com/querysim/querysim/internal/schema"
	"github.com/querysim/querysim/internal/translate"
)

// Bounds for the synthesis strategies.
const (
	aggregateMin   = 1000
	aggregateMax   = 100000 // exclusive
	identifierMax  = 1000
	foreignKeyMax  = 50
	filterRowsMax  = 10
	defaultRows    = 5
	defaultOrdered = 10
)

// Executor interprets a structured query, selects one of the four synthesis
// strategies, and fabricates result rows. The random source is owned by the
// executor and guarded by a mutex, so one instance may serve concurrent
// requests; pass a fixed seed for deterministic output in tests.
type Executor struct {
	registry *schema.Registry

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an executor over the given catalog. A zero seed draws one from
// the clock.
func New(registry *schema.Registry, seed int64) *Executor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Executor{
		registry: registry,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Execute maps the query to exactly one of four strategies:
// aggregate scalar, ranked list, filtered list, or default list. Every
// structured query produces rows; only a registry inconsistency (a table the
// translation layer should never emit) returns an error.
func (e *Executor) Execute(q translate.Query) ([]Record, error) {
	switch {
	case q.HasAggregate():
		return []Record{e.aggregateRow(q)}, nil

	case q.HasOrdering():
		limit := q.Limit
		if limit <= 0 {
			limit = defaultOrdered
		}

		return e.Synthesize(q.Table, limit)

	case q.Kind == translate.KindFallback:
		// The fallback query names no real table, so there is no schema to
		// synthesize from; echo the rendered query instead.
		row := NewRecord(2)
		row.Set("result", "Mock data for query")
		row.Set("query", q.String())

		return []Record{row}, nil

	case q.HasPredicate():
		return e.Synthesize(q.Table, e.between(1, filterRowsMax))

	default:
		return e.Synthesize(q.Table, defaultRows)
	}
}

// aggregateRow builds the single-row result of an aggregate query: one
// column named after the aggregate and its source column.
func (e *Executor) aggregateRow(q translate.Query) Record {
	name := fmt.Sprintf("%s(%s)", strings.ToLower(string(q.Aggregate)), q.AggColumn)

	row := NewRecord(1)
	row.Set(name, e.between(aggregateMin, aggregateMax-1))

	return row
}

// Synthesize fabricates count rows for a table. Identifier columns get a
// random key, foreign keys a random reference, generator-backed columns
// their generated value, and everything else an empty placeholder. Every
// column of the schema appears, in declared order.
func (e *Executor) Synthesize(table string, count int) ([]Record, error) {
	t, ok := e.registry.Table(table)
	if !ok {
		return nil, errors.Newf(errors.ErrTypeRegistry, "unknown table: %s", table)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	records := make([]Record, 0, count)

	for range count {
		row := NewRecord(len(t.Columns))

		for _, col := range t.Columns {
			switch {
			case col.Class == schema.ClassIdentifier:
				row.Set(col.Name, 1+e.rng.Intn(identifierMax))
			case col.Class == schema.ClassForeignKey:
				row.Set(col.Name, 1+e.rng.Intn(foreignKeyMax))
			case col.Generate != nil:
				row.Set(col.Name, col.Generate(e.rng))
			default:
				row.Set(col.Name, "")
			}
		}

		records = append(records, row)
	}

	return records, nil
}

// between returns a uniform integer in [lo, hi] from the guarded source.
func (e *Executor) between(lo, hi int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return lo + e.rng.Intn(hi-lo+1)
}
