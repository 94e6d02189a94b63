package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const cookingSkeleton = `graph TD;
    A[%s] --> B[Gather Ingredients];
    B --> C[Prepare Workspace];
    C --> D[Follow Recipe Steps];
    D --> E[Cook/Bake];
    E --> F[Check Quality];
    F --> G[Serve & Enjoy];`

const marketingSkeleton = `graph TD;
    A[%s] --> B[Market Research];
    B --> C[Define Target Audience];
    C --> D[Create Strategy];
    D --> E[Execute Campaigns];
    E --> F[Measure Results];
    F --> G[Optimize & Improve];`

const genericSkeleton = `graph TD;
    A[%s] --> B[Understanding Basics];
    B --> C[Key Components];
    C --> D[Implementation];
    D --> E[Best Practices];
    E --> F[Advanced Techniques];
    F --> G[Continuous Improvement];`

// Fallback builds a fixed diagram for topic without any model output. The
// result always starts with a "graph TD;" directive.
func Fallback(topic string) string {
	label := capitalize(topic)
	lower := strings.ToLower(topic)
	switch {
	case containsAny(lower, "cooking", "pizza"):
		return fmt.Sprintf(cookingSkeleton, label)
	case containsAny(lower, "marketing"):
		return fmt.Sprintf(marketingSkeleton, label)
	default:
		return fmt.Sprintf(genericSkeleton, label)
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
