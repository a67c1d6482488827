package browser

import (
	"strings"
	"unicode/utf8"

	"mangashelf/pkg/models"
)

// View is the derived result of applying a State to a collection.
type View struct {
	// Visible holds every item matching the active filters, in collection
	// order unless a sort was applied afterwards.
	Visible []models.Item
	// PageItems is the slice of Visible shown on Page.
	PageItems  []models.Item
	Page       int
	TotalPages int
}

// Total is the number of visible items across all pages.
func (v View) Total() int { return len(v.Visible) }

// Empty reports whether nothing matches the current filters.
func (v View) Empty() bool { return len(v.Visible) == 0 }

// Materialize filters items by st and cuts the current page. The returned
// page is st.Page clamped to the available pages. items is never modified.
func Materialize(items []models.Item, st State) View {
	visible := Filter(items, st)
	total := TotalPages(len(visible))
	page := ClampPage(st.Page, total)
	return View{
		Visible:    visible,
		PageItems:  PageSlice(visible, page),
		Page:       page,
		TotalPages: total,
	}
}

// Filter returns a new slice with the items satisfying every active
// predicate of st. Predicates are independent, their order does not matter.
func Filter(items []models.Item, st State) []models.Item {
	query := strings.ToLower(st.Search)
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if st.Genre != "" && !it.HasGenre(st.Genre) {
			continue
		}
		if st.Letter != "" && !MatchLetter(it.Title, st.Letter) {
			continue
		}
		if query != "" && !matchSearch(it, query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// MatchLetter reports whether title belongs to the letter bucket. The "#"
// bucket holds titles whose first character is not an ASCII letter.
func MatchLetter(title, letter string) bool {
	first, _ := utf8.DecodeRuneInString(title)
	if letter == LetterOther {
		return !isASCIILetter(first)
	}
	if len(letter) != 1 || !isASCIILetter(first) {
		return false
	}
	return strings.EqualFold(string(first), letter)
}

// BucketOf returns the letter bucket a title falls into.
func BucketOf(title string) string {
	first, _ := utf8.DecodeRuneInString(title)
	if !isASCIILetter(first) {
		return LetterOther
	}
	return strings.ToUpper(string(first))
}

func matchSearch(it models.Item, lowered string) bool {
	return strings.Contains(strings.ToLower(it.Title), lowered) ||
		strings.Contains(strings.ToLower(it.Code), lowered)
}

// TotalPages is ceil(n / PageSize); zero for an empty subset.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// ClampPage bounds page to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	upper := max(1, totalPages)
	if page < 1 {
		return 1
	}
	if page > upper {
		return upper
	}
	return page
}

// PageSlice cuts page (1-based) out of visible.
func PageSlice(visible []models.Item, page int) []models.Item {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(visible) {
		return []models.Item{}
	}
	end := min(start+PageSize, len(visible))
	return visible[start:end]
}

// Genres lists the unique genres of items in first-seen order.
func Genres(items []models.Item) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		for _, g := range it.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
