package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is a local stand-in that never calls a model. When Response is
// empty it answers with a short reasoning preamble and a fenced diagram
// built from the quoted topic in the user prompt.
type MockLLM struct {
	Response string
}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if m.Response != "" {
		return m.Response, nil
	}
	topic := quotedTopic(prompt.User)

	var sb strings.Builder
	sb.WriteString("<think>Outline the main stages of the topic.</think>\n\n")
	sb.WriteString("```mermaid\n")
	sb.WriteString("graph TD;\n")
	sb.WriteString(fmt.Sprintf("    A[%s] --> B[Overview];\n", topic))
	sb.WriteString("    B --> C[Core Concepts];\n")
	sb.WriteString("    C --> D[Hands-on Steps];\n")
	sb.WriteString("    D --> E[Review];\n")
	sb.WriteString("```\n")
	return sb.String(), nil
}

func quotedTopic(user string) string {
	start := strings.IndexByte(user, '"')
	if start < 0 {
		return "Topic"
	}
	end := strings.IndexByte(user[start+1:], '"')
	if end <= 0 {
		return "Topic"
	}
	return user[start+1 : start+1+end]
}
