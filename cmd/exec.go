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
	verboseExec bool
)

// execCmd generates a statement and executes it without relaying rows. Meant
// for DML and DDL, where the interesting result is the number of rows
// affected rather than the rows themselves.
var execCmd = &cobra.Command{
	Use:   "exec <instruction>",
	Short: "Generate a DML/DDL statement and execute it, reporting rows affected",
	Long: `The exec command sends your instruction to the completion service, extracts the
SQL code block from the response and executes it against the configured
database inside a transaction. Unlike 'pghuman run', result rows are not
fetched; only the number of rows affected is reported.

Use this for INSERT, UPDATE, DELETE and schema changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if verboseExec {
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

		if err := sess.applyStatement(cmd.Context(), res.SQL); err != nil {
			return presentError("execution failed", err)
		}
		return nil
	},
}

// applyStatement executes a side-effect statement through the session's
// executor and reports the rows affected. No result rows are fetched.
func (s *session) applyStatement(ctx context.Context, sql string) error {
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint("Executing statement:"))
	pterm.Println(sql)
	pterm.Println()

	affected, err := s.executor.RunStatement(ctx, sql)
	if err != nil {
		return err
	}

	pterm.Println("✅ " + fmt.Sprintf("Done, %d row(s) affected", affected))
	return nil
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().BoolVarP(&verboseExec, "verbose", "v", false, "Show the raw completion response and debug output")
}
