package browser

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mangashelf/pkg/models"
)

type SortKey string

const (
	SortNone   SortKey = ""
	SortTitle  SortKey = "title"
	SortRating SortKey = "rating"
)

// ParseSortKey maps a query/flag value to a SortKey. The empty string is
// SortNone.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortNone:
		return SortNone, nil
	case SortTitle:
		return SortTitle, nil
	case SortRating:
		return SortRating, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// SortBy reorders items in place: titles ascending with the collation rules
// of lang, ratings descending. SortNone leaves items untouched.
func SortBy(items []models.Item, key SortKey, lang language.Tag) error {
	switch key {
	case SortNone:
		return nil
	case SortTitle:
		// a Collator keeps scratch buffers, one per call
		col := collate.New(lang)
		slices.SortStableFunc(items, func(a, b models.Item) int {
			return col.CompareString(a.Title, b.Title)
		})
		return nil
	case SortRating:
		slices.SortStableFunc(items, func(a, b models.Item) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, string(key))
	}
}

// ParseLanguage returns the collation language for tag, English when tag is
// empty or unparseable.
func ParseLanguage(tag string) language.Tag {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return language.English
	}
	return t
}
