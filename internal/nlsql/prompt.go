// Package nlsql turns a plain-English instruction into a SQL statement using
// a chat-completion service. It owns the three steps that do not touch the
// database: prompt construction, the completion call, and extraction of the
// SQL code block from the response.
package nlsql

import (
	"fmt"

	"github.com/JelteF/pg-human/internal/llm"
)

// systemPrompt pins the model's role. The schema and the instruction travel
// as separate user messages so the instruction stays last in the context.
const systemPrompt = "You are a PostgreSQL expert"

// BuildPrompt renders the chat messages for one generation request.
// schema is the textual database description (CREATE TABLE blocks); it may be
// empty when the schema could not be described, in which case the model is
// asked to answer without it.
func BuildPrompt(schema, instruction string) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
	}
	if schema != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("My Postgres database schema looks like this:\n%s", schema),
		})
	}
	messages = append(messages, llm.Message{
		Role: llm.RoleUser,
		Content: fmt.Sprintf("Given that schema, could you give me a PostgreSQL query to do the following action: %s.\n"+
			"Respond with a single SQL statement inside a ```sql code block and no other text. "+
			"Only use the tables and columns provided in the schema.", instruction),
	})
	return messages
}
