package nlsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "bare fence",
			response: "Here's the code:\n```\nSELECT 1;\n```",
			want:     "SELECT 1;",
		},
		{
			name:     "sql language tag",
			response: "```sql\nSELECT count(*) FROM users;\n```",
			want:     "SELECT count(*) FROM users;",
		},
		{
			name:     "postgresql language tag",
			response: "Sure!\n```postgresql\nDELETE FROM sessions WHERE expired;\n```\nLet me know if that helps.",
			want:     "DELETE FROM sessions WHERE expired;",
		},
		{
			name:     "inner whitespace trimmed",
			response: "```\n\n  SELECT 1;  \n\n```",
			want:     "SELECT 1;",
		},
		{
			name:     "first block wins",
			response: "```sql\nSELECT 1;\n```\nor alternatively\n```sql\nSELECT 2;\n```",
			want:     "SELECT 1;",
		},
		{
			name:     "multi-line statement",
			response: "```sql\nSELECT id,\n       name\nFROM users\nWHERE active;\n```",
			want:     "SELECT id,\n       name\nFROM users\nWHERE active;",
		},
		{
			name:     "inline block without newline",
			response: "Use ```SELECT 1;``` for that.",
			want:     "SELECT 1;",
		},
		{
			name:     "sql starting on the fence line is kept",
			response: "```SELECT 1\nFROM users;```",
			want:     "SELECT 1\nFROM users;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSQL(tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractSQL_NoBlock(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "plain text", response: "SELECT 1; -- no fence anywhere"},
		{name: "empty response", response: ""},
		{name: "unclosed fence", response: "```sql\nSELECT 1;"},
		{name: "empty block", response: "```sql\n\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractSQL(tt.response)
			require.Error(t, err)
			assert.True(t, pgherrors.IsKind(err, pgherrors.NoSQLFound))
			assert.Contains(t, err.Error(), "no SQL found in response")
		})
	}
}
