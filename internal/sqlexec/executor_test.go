package sqlexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapRowQuery(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "plain select",
			sql:  "SELECT 1",
			want: "SELECT to_jsonb(generated_query) AS data FROM (SELECT 1) generated_query",
		},
		{
			name: "trailing semicolon removed",
			sql:  "SELECT 1;",
			want: "SELECT to_jsonb(generated_query) AS data FROM (SELECT 1) generated_query",
		},
		{
			name: "trailing whitespace and newlines removed",
			sql:  "SELECT id FROM users;\n  \n",
			want: "SELECT to_jsonb(generated_query) AS data FROM (SELECT id FROM users) generated_query",
		},
		{
			name: "inner semicolons untouched",
			sql:  "SELECT ';' AS c;",
			want: "SELECT to_jsonb(generated_query) AS data FROM (SELECT ';' AS c) generated_query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapRowQuery(tt.sql))
		})
	}
}
