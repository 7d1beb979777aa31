// Package flatten holds the pure helpers that turn relational film
// sub-lists into flat, keyed form and export fields.
package flatten

import (
	"regexp"
	"strings"

	"github.com/eac-lab/film-archive/internal/models"
)

// FindByRole pulls the first author whose role matches exactly
// (case-sensitive). Absence is a normal state for optional roles, so a
// miss returns a zero Author rather than an error.
func FindByRole(authors []models.Author, role string) models.Author {
	for _, a := range authors {
		if a.Role == role {
			return a
		}
	}
	return models.Author{}
}

// FirstOr returns the zeroth item as the "primary" record of a list,
// or fallback when the list is empty.
func FirstOr[T any](items []T, fallback T) T {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}

// Groups is an insertion-ordered partition of a list.
type Groups[T any] struct {
	keys   []string
	groups map[string][]T
}

// GroupBy partitions items by key in a single pass. Group key order is
// first-encounter order and members keep their relative input order;
// no sorting happens anywhere.
func GroupBy[T any](items []T, key func(T) string) Groups[T] {
	g := Groups[T]{groups: make(map[string][]T)}
	for _, item := range items {
		k := key(item)
		if _, ok := g.groups[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.groups[k] = append(g.groups[k], item)
	}
	return g
}

// Keys returns group keys in first-encounter order.
func (g Groups[T]) Keys() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Get returns the members of one group in input order.
func (g Groups[T]) Get(key string) []T {
	return g.groups[key]
}

func (g Groups[T]) Len() int {
	return len(g.keys)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ColumnKey derives a deterministic column name from a free-text role or
// department label: lowercase, whitespace runs collapsed to a single
// underscore, every other rune kept as-is. "Image Technicians" becomes
// "image_technicians", "Sound/Image" becomes "sound/image".
func ColumnKey(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
}
