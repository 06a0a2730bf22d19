package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Atlantic Salmon", Category: "Fresh Fish", IsVisible: true},
		{ID: 2, Name: "Smoked Salmon", Category: "Other", IsVisible: true},
		{ID: 3, Name: "Tiger Prawns", Category: "Shellfish", IsVisible: true},
		{ID: 4, Name: "Oysters", Category: "Shellfish", IsVisible: false},
		{ID: 5, Name: "Salmon Sashimi", Category: "Sashimi", IsVisible: true},
	}
}

func ids(products []models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterNoCriteria(t *testing.T) {
	products := sampleProducts()

	got := Filter(products, "", AllCategories, false)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(got), "no criteria returns everything in order")

	// Empty category behaves like the sentinel.
	got = Filter(products, "", "", false)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(got))
}

func TestFilterSearchTermCaseInsensitive(t *testing.T) {
	products := sampleProducts()

	upper := Filter(products, "Salmon", AllCategories, false)
	lower := Filter(products, "salmon", AllCategories, false)

	assert.Equal(t, []int{1, 2, 5}, ids(upper))
	assert.Equal(t, ids(upper), ids(lower), "search is case-insensitive")
}

func TestFilterSearchSubstring(t *testing.T) {
	got := Filter(sampleProducts(), "praw", AllCategories, false)
	assert.Equal(t, []int{3}, ids(got), "term matches anywhere in the name")
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(sampleProducts(), "xyz", AllCategories, false)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterCategoryExactMatch(t *testing.T) {
	got := Filter(sampleProducts(), "", "Shellfish", false)
	assert.Equal(t, []int{3, 4}, ids(got))

	got = Filter(sampleProducts(), "", "Fresh", false)
	assert.Empty(t, got, "category match is exact, not a prefix")
}

func TestFilterCombinedCriteria(t *testing.T) {
	got := Filter(sampleProducts(), "salmon", "Sashimi", false)
	assert.Equal(t, []int{5}, ids(got))
}

func TestFilterPublicOnlyHidesInvisible(t *testing.T) {
	public := Filter(sampleProducts(), "", AllCategories, true)
	assert.Equal(t, []int{1, 2, 3, 5}, ids(public), "hidden products are dropped from the public view")

	admin := Filter(sampleProducts(), "", AllCategories, false)
	assert.Contains(t, ids(admin), 4, "the admin view sees hidden products")
}

func TestFilterIsIdempotent(t *testing.T) {
	once := Filter(sampleProducts(), "salmon", AllCategories, true)
	twice := Filter(once, "salmon", AllCategories, true)
	assert.Equal(t, once, twice)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	Filter(products, "salmon", "Shellfish", true)
	assert.Equal(t, sampleProducts(), products)
}
