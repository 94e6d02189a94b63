package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		topic string
		want  Category
	}{
		{"Cooking pasta", CategoryCooking},
		{"BRAND awareness", CategoryMarketing},
		{"Web scraping", CategoryTechnology},
		{"Operations review", CategoryBusiness},
		{"Photosynthesis", CategoryNone},
		{"", CategoryNone},
		// substring, not word, matching
		{"happy hour", CategoryTechnology},
	}
	for _, tc := range cases {
		t.Run(tc.topic, func(t *testing.T) {
			assert.Equal(t, tc.want, Categorize(tc.topic))
		})
	}
}

func TestCategorize_TableOrderWins(t *testing.T) {
	// "software" is longer and comes first in the text, but marketing is
	// declared before technology.
	assert.Equal(t, CategoryMarketing, Categorize("software sales"))
	// business keyword first in text, cooking declared first.
	assert.Equal(t, CategoryCooking, Categorize("business of food trucks"))
	assert.Equal(t, CategoryTechnology, Categorize("app workflow"))
}

func TestExemplar(t *testing.T) {
	for _, c := range []Category{CategoryCooking, CategoryMarketing, CategoryTechnology, CategoryBusiness} {
		ex := Exemplar(c)
		require.NotEmpty(t, ex, c)
		assert.Contains(t, ex, "graph TD;")
	}
	assert.Empty(t, Exemplar(CategoryNone))
}

func TestCategory_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		C Category `json:"category"`
	}{CategoryNone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":null}`, string(b))

	b, err = json.Marshal(CategoryCooking)
	require.NoError(t, err)
	assert.Equal(t, `"cooking"`, string(b))
}
