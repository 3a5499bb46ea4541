// Copyright (c) 2025 The pg-human Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pterm/pterm"

	"github.com/JelteF/pg-human/internal/config"
	"github.com/JelteF/pg-human/internal/dsn"
	pgherrors "github.com/JelteF/pg-human/internal/errors"
	"github.com/JelteF/pg-human/internal/httperrors"
	"github.com/JelteF/pg-human/internal/keychain"
	"github.com/JelteF/pg-human/internal/llm"
	"github.com/JelteF/pg-human/internal/logging"
	"github.com/JelteF/pg-human/internal/nlsql"
	"github.com/JelteF/pg-human/internal/sqlexec"
)

// session holds everything one suggest/run/exec invocation needs. The flow is
// strictly linear: config -> API key -> completer -> DSN -> pool. The API key
// is resolved before anything touches the network, so a missing key fails as
// a configuration error without a single request being made.
//
// executor and describe are the session's database capabilities. Commands
// that execute go through executor; suggest never touches it. Both are plain
// fields so tests can swap in fakes without a pool.
type session struct {
	cfg      config.Config
	svc      *nlsql.Service
	pool     *pgxpool.Pool
	executor sqlexec.StatementExecutor
	describe func(ctx context.Context) (string, error)
}

// newSession resolves configuration and opens the database pool.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apiKey, err := resolveAPIKey()
	if err != nil {
		return nil, err
	}

	rawDSN, err := resolveDSN()
	if err != nil {
		return nil, err
	}
	normalizedDSN, err := dsn.Parse(rawDSN)
	if err != nil {
		pterm.Println("❌ Invalid database connection string.")
		pterm.Println("   Please run 'pghuman connect' to reconfigure your database.")
		return nil, err
	}

	pool, err := pgxpool.New(ctx, normalizedDSN)
	if err != nil {
		return nil, pgherrors.Wrap(pgherrors.ExecutionFailed, "could not open connection pool", err)
	}

	return &session{
		cfg:      cfg,
		svc:      nlsql.NewService(llm.NewOpenAIClient(cfg, apiKey)),
		pool:     pool,
		executor: sqlexec.New(pool),
		describe: func(ctx context.Context) (string, error) {
			return sqlexec.DescribeDatabase(ctx, pool)
		},
	}, nil
}

// Close releases the database pool.
func (s *session) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// generate describes the schema, asks the completion service for a statement
// and extracts the SQL from the response. A spinner runs while the request is
// in flight; the configured request timeout bounds the completion call.
func (s *session) generate(ctx context.Context, instruction string) (nlsql.Result, error) {
	schema, err := s.describe(ctx)
	if err != nil {
		return nlsql.Result{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout())
	defer cancel()

	stopSpinner := startThinkingSpinner("Asking the model for a query")
	res, err := s.svc.GenerateSQL(reqCtx, schema, instruction)
	stopSpinner()

	if pgherrors.IsKind(err, pgherrors.CompletionFailed) {
		return nlsql.Result{}, httperrors.FormatNetworkError(err, "asking the model for a query")
	}
	return res, err
}

// resolveAPIKey returns the completion API key from the environment or the OS
// keychain. A missing key is a configuration error, reported before any
// network call is attempted.
func resolveAPIKey() (string, error) {
	for _, name := range []string{"PGHUMAN_API_KEY", "OPENAI_API_KEY"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}

	if km, err := keychain.GetManager(); err == nil {
		if v, err := km.LoadAPIKey(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}

	return "", pgherrors.New(pgherrors.ConfigMissing,
		"no completion API key configured; run 'pghuman apikey' or set PGHUMAN_API_KEY")
}

// resolveDSN returns the raw database DSN from the environment or the OS
// keychain.
func resolveDSN() (string, error) {
	for _, name := range []string{"PGHUMAN_DSN", "DATABASE_URL"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}

	if km, err := keychain.GetManager(); err == nil {
		if v, err := km.LoadDBDSN(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}

	return "", pgherrors.New(pgherrors.ConfigMissing,
		"no database connection configured; run 'pghuman connect' or set PGHUMAN_DSN")
}

// presentError prints err for the user with secrets masked and returns it so
// cobra propagates the non-zero exit code.
func presentError(context string, err error) error {
	pterm.Println("❌ " + logging.PresentError(context, err))
	return err
}
