package nlsql

import (
	"context"

	"github.com/JelteF/pg-human/internal/llm"
)

// Result carries one generated statement plus the raw completion text it was
// extracted from. Nothing here is persisted; it lives for a single invocation.
type Result struct {
	// SQL is the trimmed content of the first fenced code block.
	SQL string
	// Raw is the full completion response, kept for verbose output.
	Raw string
}

// Service runs the linear generate pipeline: prompt -> completion -> extract.
// It never executes anything; execution is the statement runner's job.
type Service struct {
	completer llm.Completer
}

// NewService creates a Service around the given completer.
func NewService(completer llm.Completer) *Service {
	return &Service{completer: completer}
}

// GenerateSQL asks the completion service for a statement implementing the
// instruction against the described schema. It fails at the first failing
// step: a completion error surfaces as completion_failed, a response without
// a fenced code block as no_sql_found.
func (s *Service) GenerateSQL(ctx context.Context, schema, instruction string) (Result, error) {
	raw, err := s.completer.Complete(ctx, BuildPrompt(schema, instruction))
	if err != nil {
		return Result{}, err
	}

	sql, err := ExtractSQL(raw)
	if err != nil {
		return Result{}, err
	}

	return Result{SQL: sql, Raw: raw}, nil
}
