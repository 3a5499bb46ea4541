package nlsql

import (
	"strings"

	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

const fence = "```"

// language tags models put on the opening fence of SQL blocks.
var sqlInfoTags = map[string]bool{
	"sql":        true,
	"postgresql": true,
	"postgres":   true,
	"pgsql":      true,
	"plpgsql":    true,
}

// ExtractSQL locates the first fenced code block in a completion response and
// returns its inner text trimmed of leading/trailing whitespace.
//
// This is a linear scan, not a parser: the first ``` pair wins, later blocks
// and nested markers are ignored, and the content is not validated as SQL.
// An opening fence without a closing fence counts as no block at all.
func ExtractSQL(response string) (string, error) {
	start := strings.Index(response, fence)
	if start == -1 {
		return "", pgherrors.New(pgherrors.NoSQLFound, "no SQL found in response")
	}

	body := response[start+len(fence):]
	end := strings.Index(body, fence)
	if end == -1 {
		return "", pgherrors.New(pgherrors.NoSQLFound, "no SQL found in response")
	}
	block := body[:end]

	// Drop a language tag on the opening fence line ("```sql") but keep the
	// first line when the model put actual SQL there ("```SELECT 1;```").
	if nl := strings.IndexByte(block, '\n'); nl >= 0 {
		if sqlInfoTags[strings.ToLower(strings.TrimSpace(block[:nl]))] {
			block = block[nl+1:]
		}
	}

	sql := strings.TrimSpace(block)
	if sql == "" {
		return "", pgherrors.New(pgherrors.NoSQLFound, "no SQL found in response")
	}
	return sql, nil
}
