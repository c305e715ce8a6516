package catalog

import (
	"slices"
	"strings"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/models"
)

// Query is one filter selection. Zero values mean "no constraint" on that axis.
type Query struct {
	// District must match exactly unless empty or config.DistrictAll.
	District string
	// Categories restricts to members of the set when non-empty.
	Categories []string
	// Keyword must be a case-sensitive substring of the name when non-empty.
	Keyword string
}

// Filter returns the businesses matching every constraint of q, in catalog order.
// The input is never modified.
func Filter(catalog []models.Business, q Query) []models.Business {
	var cats map[string]struct{}
	if len(q.Categories) > 0 {
		cats = make(map[string]struct{}, len(q.Categories))
		for _, c := range q.Categories {
			cats[c] = struct{}{}
		}
	}
	filterDistrict := q.District != "" && q.District != config.DistrictAll

	out := make([]models.Business, 0, len(catalog))
	for _, b := range catalog {
		if filterDistrict && b.District != q.District {
			continue
		}
		if cats != nil {
			if _, ok := cats[b.Category]; !ok {
				continue
			}
		}
		if q.Keyword != "" && !strings.Contains(b.Name, q.Keyword) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Categories returns the sorted distinct category names of the catalog.
func Categories(catalog []models.Business) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, b := range catalog {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	slices.Sort(out)
	return out
}

// Find returns the first business with exactly the given name.
func Find(catalog []models.Business, name string) (models.Business, bool) {
	for _, b := range catalog {
		if b.Name == name {
			return b, true
		}
	}
	return models.Business{}, false
}

// DistrictOptions lists the district selector values: "전체" then the 25 districts.
func DistrictOptions() []string {
	return append([]string{config.DistrictAll}, config.SeoulDistricts...)
}
