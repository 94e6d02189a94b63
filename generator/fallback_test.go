package generator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var reDirective = regexp.MustCompile(`^graph (TD|TB|LR|RL|BT);\n`)

func TestFallback_AlwaysHasDirective(t *testing.T) {
	for _, topic := range []string{"", "   ", "x", "Cooking pasta", "pizza", "marketing funnel", "élan vital", "日本語", "\xff\xfe"} {
		got := Fallback(topic)
		assert.Regexp(t, reDirective, got, "topic %q", topic)
		assert.GreaterOrEqual(t, len(got), DefaultMinDiagramLength)
	}
}

func TestFallback_Shapes(t *testing.T) {
	cooking := Fallback("Cooking pasta")
	assert.Contains(t, cooking, "A[Cooking pasta]")
	assert.Contains(t, cooking, "Gather Ingredients")
	assert.Equal(t, 6, strings.Count(cooking, "-->"))

	pizza := Fallback("pizza")
	assert.Contains(t, pizza, "A[Pizza]")
	assert.Contains(t, pizza, "Serve & Enjoy")

	mkt := Fallback("email marketing")
	assert.Contains(t, mkt, "A[Email marketing]")
	assert.Contains(t, mkt, "Market Research")

	generic := Fallback("bees")
	assert.Contains(t, generic, "A[Bees]")
	for _, step := range []string{"Understanding Basics", "Key Components", "Implementation", "Best Practices", "Advanced Techniques", "Continuous Improvement"} {
		assert.Contains(t, generic, step)
	}
}

func TestFallback_CookingCheckedBeforeMarketing(t *testing.T) {
	assert.Contains(t, Fallback("marketing a cooking school"), "Gather Ingredients")
}

func TestFallback_Deterministic(t *testing.T) {
	assert.Equal(t, Fallback("élan"), Fallback("élan"))
	assert.Contains(t, Fallback("élan"), "A[Élan]")
}
