// Package sqlexec executes generated SQL statements over a pgx connection pool.
// It exposes the two capabilities the rest of the tool needs: run a statement
// and relay its rows, or run a statement for its side effects only. Callers
// pick the capability; nothing here inspects the SQL text to guess.
package sqlexec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

// Row is one relayed result row: its position and the row rendered as a
// single JSON object, matching Postgres' own to_jsonb output.
type Row struct {
	Index int             `json:"i"`
	Data  json.RawMessage `json:"data"`
}

// StatementExecutor is the capability handed to the entry points that execute.
// The display-only entry point never receives one.
type StatementExecutor interface {
	// RunQuery executes a data-returning statement and relays its rows.
	RunQuery(ctx context.Context, sql string) ([]Row, error)
	// RunStatement executes a statement for its side effects and reports
	// the number of rows affected.
	RunStatement(ctx context.Context, sql string) (int64, error)
}

// Executor implements StatementExecutor on a Postgres connection pool.
type Executor struct {
	Pool *pgxpool.Pool
}

var _ StatementExecutor = (*Executor)(nil)

// New creates an Executor from an existing pgx pool.
func New(pool *pgxpool.Pool) *Executor {
	return &Executor{Pool: pool}
}

// wrapRowQuery turns an arbitrary data-returning statement into a query that
// yields one jsonb value per row, so rows of any shape can be relayed without
// knowing their column types. The trailing semicolon must go first, otherwise
// the statement cannot be used as a subquery.
func wrapRowQuery(sql string) string {
	cleaned := strings.TrimRight(sql, "; \n\t")
	return fmt.Sprintf("SELECT to_jsonb(generated_query) AS data FROM (%s) generated_query", cleaned)
}

// RunQuery executes a data-returning statement and relays its rows in order.
// Database errors surface unchanged inside an execution_failed error.
func (e *Executor) RunQuery(ctx context.Context, sql string) ([]Row, error) {
	conn, err := e.Pool.Acquire(ctx)
	if err != nil {
		return nil, pgherrors.Wrap(pgherrors.ExecutionFailed, "could not acquire connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, wrapRowQuery(sql))
	if err != nil {
		return nil, pgherrors.Wrap(pgherrors.ExecutionFailed, "statement failed", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, pgherrors.Wrap(pgherrors.ExecutionFailed, "could not read row", err)
		}
		out = append(out, Row{Index: len(out), Data: json.RawMessage(data)})
	}
	if rows.Err() != nil {
		return nil, pgherrors.Wrap(pgherrors.ExecutionFailed, "statement failed", rows.Err())
	}

	return out, nil
}

// RunStatement executes a statement inside an explicit transaction and
// reports the rows affected. The transaction makes sure a successful DML
// statement is committed even if the pool connection is recycled afterwards.
func (e *Executor) RunStatement(ctx context.Context, sql string) (int64, error) {
	conn, err := e.Pool.Acquire(ctx)
	if err != nil {
		return 0, pgherrors.Wrap(pgherrors.ExecutionFailed, "could not acquire connection", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, pgherrors.Wrap(pgherrors.ExecutionFailed, "could not begin transaction", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	ct, err := tx.Exec(ctx, sql)
	if err != nil {
		return 0, pgherrors.Wrap(pgherrors.ExecutionFailed, "statement failed", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, pgherrors.Wrap(pgherrors.ExecutionFailed, "commit failed", err)
	}

	return ct.RowsAffected(), nil
}
