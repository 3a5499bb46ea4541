// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

var (
	verboseRun bool
)

// runCmd generates a statement and executes it, relaying the result rows.
// Each row comes back from Postgres as a single jsonb value, so rows of any
// shape can be printed without knowing their column types.
var runCmd = &cobra.Command{
	Use:   "run <instruction>",
	Short: "Generate a SQL statement, execute it and show the result rows",
	Long: `The run command sends your instruction to the completion service, extracts the
SQL code block from the response, executes it against the configured database
and prints the result rows as JSON records.

The generated statement is shown before it runs. There is no confirmation
step - if you want to review first, use 'pghuman suggest'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if verboseRun {
			os.Setenv("PGHUMAN_VERBOSE", "1")
		}
		instruction := strings.Join(args, " ")

		sess, err := newSession(cmd.Context())
		if err != nil {
			return presentError("cannot start", err)
		}
		defer sess.Close()

		res, err := sess.generate(cmd.Context(), instruction)
		if err != nil {
			if pgherrors.IsKind(err, pgherrors.CompletionFailed) {
				// already displayed with troubleshooting hints
				return err
			}
			return presentError("no statement produced", err)
		}

		if err := sess.relayRows(cmd.Context(), res.SQL); err != nil {
			return presentError("execution failed", err)
		}
		return nil
	},
}

// relayRows executes a data-returning statement through the session's
// executor and prints each result row as a numbered JSON record.
func (s *session) relayRows(ctx context.Context, sql string) error {
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("Executing query:"))
	pterm.Println(sql)
	pterm.Println()

	rows, err := s.executor.RunQuery(ctx, sql)
	if err != nil {
		return err
	}

	for _, row := range rows {
		pterm.Printf("%4d | %s\n", row.Index, string(row.Data))
	}
	pterm.Println()
	pterm.Println(pterm.Gray(fmt.Sprintf("%d row(s)", len(rows))))
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&verboseRun, "verbose", "v", false, "Show the raw completion response and debug output")
}
