package generator

import (
	"encoding/json"
	"strings"
)

// Category is the style bucket a topic falls into. CategoryNone means no
// keyword matched.
type Category string

const (
	CategoryNone       Category = ""
	CategoryCooking    Category = "cooking"
	CategoryMarketing  Category = "marketing"
	CategoryTechnology Category = "technology"
	CategoryBusiness   Category = "business"
)

// MarshalJSON encodes CategoryNone as null.
func (c Category) MarshalJSON() ([]byte, error) {
	if c == CategoryNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// String returns "general" for CategoryNone, for logs.
func (c Category) String() string {
	if c == CategoryNone {
		return "general"
	}
	return string(c)
}

type categoryEntry struct {
	category Category
	keywords []string
	exemplar string
}

// categoryTable is scanned in order; earlier entries win.
var categoryTable = []categoryEntry{
	{
		category: CategoryCooking,
		keywords: []string{"cooking", "recipe", "kitchen", "food", "pizza", "baking", "ingredients"},
		exemplar: `graph TD;
    A[Start Cooking] --> B[Gather Ingredients];
    B --> C[Prepare Tools];
    C --> D[Follow Recipe Steps];
    D --> E[Cook/Bake];
    E --> F[Check Doneness];
    F --> G[Serve Hot];`,
	},
	{
		category: CategoryMarketing,
		keywords: []string{"marketing", "advertising", "promotion", "brand", "customer", "sales"},
		exemplar: `graph TD;
    A[Marketing Strategy] --> B[Market Research];
    A --> C[Target Audience];
    A --> D[Brand Positioning];
    B --> E[Customer Analysis];
    C --> F[Segmentation];
    D --> G[Messaging];`,
	},
	{
		category: CategoryTechnology,
		keywords: []string{"software", "development", "programming", "system", "app", "web"},
		exemplar: `graph TD;
    A[Software Development] --> B[Requirements];
    B --> C[Design];
    C --> D[Implementation];
    D --> E[Testing];
    E --> F[Deployment];`,
	},
	{
		category: CategoryBusiness,
		keywords: []string{"business", "process", "workflow", "management", "operations"},
		exemplar: `graph TD;
    A[Business Process] --> B[Planning];
    B --> C[Execution];
    C --> D[Monitoring];
    D --> E[Optimization];`,
	},
}

// Categorize returns the first category in table order with a keyword
// contained in the lower-cased topic. Keyword length and position in the
// topic do not matter.
func Categorize(topic string) Category {
	lower := strings.ToLower(topic)
	for _, e := range categoryTable {
		if containsAny(lower, e.keywords...) {
			return e.category
		}
	}
	return CategoryNone
}

// Exemplar returns the style reference diagram for c, or "" for CategoryNone.
func Exemplar(c Category) string {
	for _, e := range categoryTable {
		if e.category == c {
			return e.exemplar
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
