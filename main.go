// Package main is the entry point for the pg-human CLI.
// It turns plain-English instructions into SQL via an LLM completion API
// and optionally runs the result against a Postgres database.
package main

import (
	"github.com/JelteF/pg-human/cmd"
)

func main() {
	cmd.Execute()
}
