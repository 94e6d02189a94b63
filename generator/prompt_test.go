package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_System(t *testing.T) {
	p := BuildPrompt("Bees", CategoryNone)
	assert.Contains(t, p.System, "```mermaid")
	assert.Contains(t, p.System, "graph TD;")
	assert.Contains(t, p.System, "[square brackets]")
	assert.Contains(t, p.System, "-->")
	assert.Contains(t, p.System, "NEVER add machine learning")
}

func TestBuildPrompt_UserEmbedsTopic(t *testing.T) {
	p := BuildPrompt(`Bees "and" hives`, CategoryNone)
	assert.GreaterOrEqual(t, strings.Count(p.User, `"Bees "and" hives"`), 5)
	assert.Contains(t, p.User, "6-12 nodes")
	assert.NotContains(t, p.User, "style only")
	assert.True(t, strings.HasSuffix(p.User, `Create the diagram for "Bees "and" hives":`))
}

func TestBuildPrompt_Exemplar(t *testing.T) {
	p := BuildPrompt("Cooking pasta", CategoryCooking)
	assert.Contains(t, p.User, "style only, not content")
	assert.Contains(t, p.User, Exemplar(CategoryCooking))
	assert.Contains(t, p.User, "For cooking topics")
}

func TestBuildPrompt_HintIndependentOfCategory(t *testing.T) {
	cases := []struct {
		topic    string
		category Category
		hint     string
	}{
		// technology exemplar, business hint
		{"system process", CategoryTechnology, "For business topics"},
		{"Web process", CategoryTechnology, "For business topics"},
		// marketing is declared before technology and wins both ways
		{"app marketing", CategoryMarketing, "For marketing topics"},
		{"web advertising", CategoryMarketing, "For marketing topics"},
		// category keywords that are not hint keywords
		{"Baking in the kitchen", CategoryCooking, ""},
		{"Brand promotion", CategoryMarketing, ""},
		// cooking hint is checked before business
		{"food business", CategoryCooking, "For cooking topics"},
	}
	for _, tc := range cases {
		t.Run(tc.topic, func(t *testing.T) {
			cat := Categorize(tc.topic)
			assert.Equal(t, tc.category, cat)

			p := BuildPrompt(tc.topic, cat)
			assert.Contains(t, p.User, Exemplar(tc.category))
			if tc.hint == "" {
				assert.NotContains(t, p.User, "topics, focus on:")
				return
			}
			assert.Contains(t, p.User, tc.hint)
			assert.Equal(t, 1, strings.Count(p.User, "topics, focus on:"))
		})
	}
}

func TestFocusHint(t *testing.T) {
	assert.Contains(t, focusHint("Food recipe"), "cooking")
	assert.Contains(t, focusHint("Advertising"), "marketing")
	assert.Contains(t, focusHint("Hiring process"), "business")
	// cooking is checked first
	assert.Contains(t, focusHint("food business"), "cooking")
	// "kitchen" is a cooking category keyword but not a hint keyword
	assert.Empty(t, focusHint("kitchen"))
}
