// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sqlexec

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

// ColumnDescription is one column of a described table.
type ColumnDescription struct {
	Name     string
	TypeName string
}

// TableDescription is the prompt-facing description of one table:
// its columns from information_schema plus the table's constraint clauses.
type TableDescription struct {
	Schema      string
	Name        string
	Columns     []ColumnDescription
	Constraints []string
}

// Render formats the table as a readable CREATE TABLE block:
//
//	CREATE TABLE public.ads(
//	    id bigint,
//	    name text,
//	    PRIMARY KEY (id)
//	);
func (t TableDescription) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s(", quoteQualified(t.Schema, t.Name))
	for i, column := range t.Columns {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "\n    %s %s", column.Name, column.TypeName)
	}
	for _, constraint := range t.Constraints {
		b.WriteString(",")
		fmt.Fprintf(&b, "\n    %s", constraint)
	}
	b.WriteString("\n);")
	return b.String()
}

// RenderTables joins table descriptions into the schema text sent to the model.
func RenderTables(tables []TableDescription) string {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, t.Render())
	}
	return strings.Join(parts, "\n\n")
}

var plainIdent = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// quoteQualified quotes schema and table names only when they need it,
// so common lowercase names render without noise.
func quoteQualified(schema, name string) string {
	return quoteIdent(schema) + "." + quoteIdent(name)
}

func quoteIdent(ident string) string {
	if plainIdent.MatchString(ident) {
		return ident
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// columnsQuery lists every column of every table visible on the current
// search path, ordered so rows of one table are consecutive.
const columnsQuery = `
SELECT
    table_schema::text,
    table_name::text,
    column_name::text,
    data_type::text
FROM information_schema.columns
WHERE table_schema = ANY(current_schemas(false))
ORDER BY table_schema, table_name, ordinal_position;
`

// constraintsQuery fetches the definition of every constraint on one table.
const constraintsQuery = `
SELECT pg_get_constraintdef(con.oid)
FROM pg_catalog.pg_constraint con
     INNER JOIN pg_catalog.pg_class rel
                ON rel.oid = con.conrelid
     INNER JOIN pg_catalog.pg_namespace nsp
                ON nsp.oid = connamespace
WHERE nsp.nspname = $1 AND rel.relname = $2;
`

// DescribeDatabase renders the visible schema as CREATE TABLE text for the
// prompt. Tables outside the current search path are not included, mirroring
// what an unqualified query in this session could touch.
func DescribeDatabase(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not acquire connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, columnsQuery)
	if err != nil {
		return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not list columns", err)
	}

	var tables []TableDescription
	for rows.Next() {
		var schema, table, column, typeName string
		if err := rows.Scan(&schema, &table, &column, &typeName); err != nil {
			rows.Close()
			return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not read column row", err)
		}
		if len(tables) == 0 || tables[len(tables)-1].Schema != schema || tables[len(tables)-1].Name != table {
			tables = append(tables, TableDescription{Schema: schema, Name: table})
		}
		last := &tables[len(tables)-1]
		last.Columns = append(last.Columns, ColumnDescription{Name: column, TypeName: typeName})
	}
	if rows.Err() != nil {
		return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not list columns", rows.Err())
	}
	rows.Close()

	// TODO: fetch all constraints with a single query instead of one per table
	for i := range tables {
		constraintRows, err := conn.Query(ctx, constraintsQuery, tables[i].Schema, tables[i].Name)
		if err != nil {
			return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not list constraints", err)
		}
		for constraintRows.Next() {
			var def string
			if err := constraintRows.Scan(&def); err != nil {
				constraintRows.Close()
				return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not read constraint row", err)
			}
			tables[i].Constraints = append(tables[i].Constraints, def)
		}
		if constraintRows.Err() != nil {
			return "", pgherrors.Wrap(pgherrors.ExecutionFailed, "could not list constraints", constraintRows.Err())
		}
		constraintRows.Close()
	}

	return RenderTables(tables), nil
}
