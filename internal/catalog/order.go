package catalog

import (
	"slices"
	"strings"
	"unicode/utf8"

	"fairprice/backend/internal/models"
)

// startsWithHangul matches names whose first rune is a precomposed Hangul
// syllable (가..힣).
func startsWithHangul(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r >= '가' && r <= '힣'
}

// order puts Hangul-named businesses first, then the rest, each group
// stably sorted by name. The input slice is reordered in place and returned.
func order(list []models.Business) []models.Business {
	hangul := make([]models.Business, 0, len(list))
	others := make([]models.Business, 0)
	for _, b := range list {
		if startsWithHangul(b.Name) {
			hangul = append(hangul, b)
		} else {
			others = append(others, b)
		}
	}
	byName := func(a, b models.Business) int { return strings.Compare(a.Name, b.Name) }
	slices.SortStableFunc(hangul, byName)
	slices.SortStableFunc(others, byName)

	n := copy(list, hangul)
	copy(list[n:], others)
	return list
}
