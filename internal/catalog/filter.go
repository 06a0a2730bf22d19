package catalog

import (
	"strings"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

// AllCategories is the sentinel category meaning no category restriction.
const AllCategories = "All"

// Filter derives the display list from a product collection, a free-text
// search term and a category selector. publicOnly additionally drops
// products hidden from the public site; the admin console passes false and
// sees everything. The input is never mutated and the output preserves the
// input order.
func Filter(products []models.Product, term, category string, publicOnly bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	lowerTerm := strings.ToLower(term)
	for _, p := range products {
		if lowerTerm != "" && !strings.Contains(strings.ToLower(p.Name), lowerTerm) {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if publicOnly && !p.IsVisible {
			continue
		}
		out = append(out, p)
	}
	return out
}
