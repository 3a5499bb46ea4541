// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for pg-human.
// It implements subcommands for configuring the database connection and the
// completion API key, and the three entry points that turn a plain-English
// instruction into SQL: suggest (display only), run (execute and relay rows)
// and exec (execute DML).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "pghuman",
	Short:         "Ask your Postgres database things in plain English",
	Long: `pg-human forwards a plain-English instruction to an LLM completion service,
extracts the SQL code block from the response, and either shows it to you
(suggest) or executes it against the configured database (run, exec).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("pghuman %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}
