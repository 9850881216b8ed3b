package catalog

import (
	"testing"

	"pataspace_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func toolCatalog() []models.Product {
	return []models.Product{
		{Name: "Drill", Description: "power tool", Category: "Power Tools"},
		{Name: "Wrench", Description: "hand tool", Category: "Hand Tools"},
	}
}

func TestFilter(t *testing.T) {
	products := toolCatalog()

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"no filter returns everything", "", AllCategories, []string{"Drill", "Wrench"}},
		{"query matches name or description", "tool", AllCategories, []string{"Drill", "Wrench"}},
		{"query is case insensitive", "DRILL", AllCategories, []string{"Drill"}},
		{"query matches description only", "power", AllCategories, []string{"Drill"}},
		{"category narrows the list", "", "Hand Tools", []string{"Wrench"}},
		{"query and category combine", "tool", "Power Tools", []string{"Drill"}},
		{"unknown category returns empty list", "tool", "Plumbing", []string{}},
		{"no match on query", "excavator", AllCategories, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(products, tt.query, tt.category)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterEmptyCategoryBehavesLikeAll(t *testing.T) {
	got := Filter(toolCatalog(), "", "")
	assert.Len(t, got, 2)
}

func TestCategories(t *testing.T) {
	products := append(toolCatalog(), models.Product{Name: "Hammer", Category: "Hand Tools"})

	got := Categories(products)
	assert.Equal(t, []string{"Power Tools", "Hand Tools"}, got)
}

func TestCategoriesSkipsEmpty(t *testing.T) {
	products := []models.Product{{Name: "Mystery"}}
	assert.Empty(t, Categories(products))
}
