// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

var (
	verboseSuggest bool
)

// suggestCmd asks the completion service for a statement and displays it.
// It never executes anything against the database; the pool is only used to
// describe the schema for the prompt.
var suggestCmd = &cobra.Command{
	Use:   "suggest <instruction>",
	Short: "Generate a SQL statement for review, without executing it",
	Long: `The suggest command sends your instruction (plus a description of the visible
database schema) to the completion service, extracts the SQL code block from
the response and prints it for review. The statement is never executed.

Example:
  pghuman suggest "show the five companies with the most clicks this month"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if verboseSuggest {
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

		if verboseSuggest {
			pterm.Println(pterm.Gray("Raw response:"))
			pterm.Println(pterm.Gray(res.Raw))
			pterm.Println()
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("You can try this query")).
			WithPadding(1).
			Println(res.SQL)
		pterm.Println()
		pterm.Println("To execute it, run: pghuman run \"" + instruction + "\"")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolVarP(&verboseSuggest, "verbose", "v", false, "Show the raw completion response")
}
