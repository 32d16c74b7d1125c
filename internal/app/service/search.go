package service

import (
	"strings"
	"unicode"

	"github.com/mfarias/listado-precios-backend/internal/app/model"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD, drops combining marks and recomposes,
// so "Membrána" and "Membrana" normalize to the same string.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch lower-cases s, strips diacritics and removes all
// whitespace. "Puerta Principal" and "puertaprincipal" normalize equally.
func NormalizeSearch(s string) string {
	stripped, _, err := transform.String(stripDiacritics, s)
	if err != nil {
		stripped = s
	}
	stripped = strings.ToLower(stripped)
	return strings.Join(strings.Fields(stripped), "")
}

// FilterProducts returns the products matching the free-text query: the
// normalized query must be a substring of the normalized name, category,
// brand or any characteristic. An empty query matches everything. The result
// preserves store order and the input slice is never mutated.
func FilterProducts(products []model.Product, query string) []model.Product {
	normalized := NormalizeSearch(query)
	if normalized == "" {
		return append([]model.Product(nil), products...)
	}

	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if productMatches(p, normalized) {
			matched = append(matched, p)
		}
	}
	return matched
}

func productMatches(p model.Product, normalizedQuery string) bool {
	if strings.Contains(NormalizeSearch(p.Name), normalizedQuery) ||
		strings.Contains(NormalizeSearch(p.Category), normalizedQuery) ||
		strings.Contains(NormalizeSearch(p.Brand), normalizedQuery) {
		return true
	}
	for _, char := range p.Characteristics {
		if strings.Contains(NormalizeSearch(char), normalizedQuery) {
			return true
		}
	}
	return false
}
