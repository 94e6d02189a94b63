package generator

import "time"

// Result is one completed generation for a topic.
type Result struct {
	Raw       string
	Mermaid   string
	Topic     string
	Category  Category
	Timestamp time.Time
	// Fallback is set when Mermaid came from the fallback skeleton rather
	// than the model output.
	Fallback bool
}
