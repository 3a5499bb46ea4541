// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/JelteF/pg-human/internal/config"
	"github.com/JelteF/pg-human/internal/llm"
	"github.com/JelteF/pg-human/internal/nlsql"
	"github.com/JelteF/pg-human/internal/sqlexec"
)

// fakeExecutor counts calls so tests can assert which capability a command
// path actually used.
type fakeExecutor struct {
	rows     []sqlexec.Row
	affected int64
	err      error

	queryCalls int
	stmtCalls  int
	lastSQL    string
}

func (f *fakeExecutor) RunQuery(_ context.Context, sql string) ([]sqlexec.Row, error) {
	f.queryCalls++
	f.lastSQL = sql
	return f.rows, f.err
}

func (f *fakeExecutor) RunStatement(_ context.Context, sql string) (int64, error) {
	f.stmtCalls++
	f.lastSQL = sql
	return f.affected, f.err
}

type cannedCompleter struct {
	response string
}

func (c cannedCompleter) Complete(context.Context, []llm.Message) (string, error) {
	return c.response, nil
}

// newFakeSession builds a session with no database pool: canned completion,
// fixed schema description, counting executor.
func newFakeSession(response string, exec *fakeExecutor) *session {
	return &session{
		cfg:      config.Default(),
		svc:      nlsql.NewService(cannedCompleter{response: response}),
		executor: exec,
		describe: func(context.Context) (string, error) {
			return "CREATE TABLE public.t(\n    id bigint\n);", nil
		},
	}
}

func TestRunRelaysRowsThroughExecutor(t *testing.T) {
	exec := &fakeExecutor{rows: []sqlexec.Row{
		{Index: 0, Data: json.RawMessage(`{"id": 1}`)},
		{Index: 1, Data: json.RawMessage(`{"id": 2}`)},
	}}
	sess := newFakeSession("```sql\nSELECT * FROM t;\n```", exec)

	res, err := sess.generate(context.Background(), "show everything in t")
	if err != nil {
		t.Fatalf("generate() error = %v", err)
	}
	if err := sess.relayRows(context.Background(), res.SQL); err != nil {
		t.Fatalf("relayRows() error = %v", err)
	}

	if exec.queryCalls != 1 {
		t.Errorf("RunQuery calls = %d, want 1", exec.queryCalls)
	}
	if exec.stmtCalls != 0 {
		t.Errorf("RunStatement calls = %d, want 0", exec.stmtCalls)
	}
	if exec.lastSQL != "SELECT * FROM t;" {
		t.Errorf("executed SQL = %q, want %q", exec.lastSQL, "SELECT * FROM t;")
	}
}

func TestExecAppliesStatementThroughExecutor(t *testing.T) {
	exec := &fakeExecutor{affected: 3}
	sess := newFakeSession("```sql\nDELETE FROM t WHERE id > 10;\n```", exec)

	res, err := sess.generate(context.Background(), "delete the big ids")
	if err != nil {
		t.Fatalf("generate() error = %v", err)
	}
	if err := sess.applyStatement(context.Background(), res.SQL); err != nil {
		t.Fatalf("applyStatement() error = %v", err)
	}

	if exec.stmtCalls != 1 {
		t.Errorf("RunStatement calls = %d, want 1", exec.stmtCalls)
	}
	if exec.queryCalls != 0 {
		t.Errorf("RunQuery calls = %d, want 0", exec.queryCalls)
	}
	if exec.lastSQL != "DELETE FROM t WHERE id > 10;" {
		t.Errorf("executed SQL = %q, want %q", exec.lastSQL, "DELETE FROM t WHERE id > 10;")
	}
}

func TestSuggestNeverReachesExecutor(t *testing.T) {
	exec := &fakeExecutor{}
	sess := newFakeSession("```sql\nSELECT 1;\n```", exec)

	// The suggest command only generates and displays; everything up to the
	// display step runs here.
	res, err := sess.generate(context.Background(), "select one")
	if err != nil {
		t.Fatalf("generate() error = %v", err)
	}
	if res.SQL != "SELECT 1;" {
		t.Errorf("generated SQL = %q, want %q", res.SQL, "SELECT 1;")
	}

	if calls := exec.queryCalls + exec.stmtCalls; calls != 0 {
		t.Errorf("executor reached %d time(s) during suggest flow, want 0", calls)
	}
}
