// Package storage bootstraps the mock warehouse: a DuckDB database holding
// the catalog's tables, seeded once with synthesized rows so the system has
// something shaped like a real analytics store behind it. Query execution
// never reads from it; it exists for schema inspection and health reporting.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/querysim/querysim/internal/errors"
	"github.com/querysim/querysim/internal/schema"
	"github.com/querysim/querysim/internal/synth"
)

// Warehouse wraps the seeded DuckDB database.
type Warehouse struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the warehouse. An empty path opens an in-memory
// database, the default deployment mode.
func Open(path string) (*Warehouse, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeStorage, "failed to create database directory")
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeStorage, "failed to open database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeStorage, "failed to ping database")
	}

	return &Warehouse{db: db, path: path}, nil
}

// Initialize creates every catalog table and seeds each empty one with
// seedRows synthesized records. Re-running against a populated database is
// a no-op, so restarts keep existing data.
func (w *Warehouse) Initialize(
	ctx context.Context,
	registry *schema.Registry,
	executor *synth.Executor,
	seedRows int,
) error {
	for _, name := range registry.TableNames() {
		table, _ := registry.Table(name)

		if err := w.createTable(ctx, table); err != nil {
			return err
		}

		count, err := w.rowCount(ctx, name)
		if err != nil {
			return err
		}

		if count > 0 || seedRows <= 0 {
			continue
		}

		records, err := executor.Synthesize(name, seedRows)
		if err != nil {
			return errors.Wrapf(err, errors.ErrTypeStorage, "failed to synthesize seed rows for %s", name)
		}

		if err := w.insert(ctx, table, records); err != nil {
			return err
		}
	}

	return nil
}

func (w *Warehouse) createTable(ctx context.Context, table schema.Table) error {
	cols := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		cols = append(cols, fmt.Sprintf("%s %s", c.Name, sqlType(c.Class)))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table.Name, strings.Join(cols, ", "))

	if _, err := w.db.ExecContext(ctx, ddl); err != nil {
		return errors.Wrapf(err, errors.ErrTypeStorage, "failed to create table %s", table.Name)
	}

	return nil
}

func (w *Warehouse) insert(ctx context.Context, table schema.Table, records []synth.Record) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrTypeStorage, "failed to begin transaction")
	}

	defer func() { _ = tx.Rollback() }()

	names := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}

	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table.Name,
		strings.Join(names, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", "),
	)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTypeStorage, "failed to prepare insert for %s", table.Name)
	}
	defer stmt.Close()

	for _, rec := range records {
		values := make([]any, 0, len(names))
		for _, name := range names {
			v, _ := rec.Get(name)
			values = append(values, v)
		}

		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return errors.Wrapf(err, errors.ErrTypeStorage, "failed to insert into %s", table.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrTypeStorage, "failed to commit seed transaction")
	}

	return nil
}

func (w *Warehouse) rowCount(ctx context.Context, table string) (int, error) {
	var count int
	if err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, errors.ErrTypeStorage, "failed to count rows in %s", table)
	}

	return count, nil
}

// Stats summarizes the seeded warehouse.
type Stats struct {
	Tables    map[string]int `json:"tables"`
	TotalRows int            `json:"total_rows"`
}

// Stats returns per-table and total row counts for the catalog tables.
func (w *Warehouse) Stats(ctx context.Context, registry *schema.Registry) (Stats, error) {
	stats := Stats{Tables: make(map[string]int)}

	for _, name := range registry.TableNames() {
		count, err := w.rowCount(ctx, name)
		if err != nil {
			return Stats{}, err
		}

		stats.Tables[name] = count
		stats.TotalRows += count
	}

	return stats, nil
}

// Ping reports database liveness for health checks.
func (w *Warehouse) Ping(ctx context.Context) error {
	return w.db.PingContext(ctx)
}

// Close releases the database handle.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

func sqlType(class schema.Class) string {
	switch class {
	case schema.ClassIdentifier, schema.ClassForeignKey:
		return "INTEGER"
	case schema.ClassMeasurable:
		return "DOUBLE"
	default:
		return "VARCHAR"
	}
}
