package browser

import (
	"fmt"

	"golang.org/x/text/language"

	"mangashelf/pkg/models"
)

// Renderer is the presentation side of a Session. The session hands it
// fully computed data and never reads anything back.
type Renderer interface {
	RenderItems(page []models.Item, total int)
	RenderTags(tags []Tag)
	RenderLetters(letters []Letter)
	RenderPagination(plan Plan)
}

// History receives the serialized state after every change. Implementations
// replace the current entry instead of pushing a new one.
type History interface {
	Replace(query string)
}

// Tag is one entry of the genre tag list. The "All" tag has an empty Genre.
type Tag struct {
	Label  string `json:"label"`
	Genre  string `json:"genre"`
	Active bool   `json:"active"`
}

// Letter is one button of the alphabet navigation.
type Letter struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// AllGenresLabel is the label of the tag that clears the genre filter.
const AllGenresLabel = "All"

// Session is the filter/pagination state machine for one viewer. It is not
// safe for concurrent use: every handler runs to completion before the next.
type Session struct {
	items   []models.Item
	genres  []string
	state   State
	view    View
	sortKey SortKey
	lang    language.Tag

	renderer Renderer
	history  History
}

type Option func(*Session)

func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

func WithHistory(h History) Option {
	return func(s *Session) {
		if h != nil {
			s.history = h
		}
	}
}

// WithLanguage sets the collation used by title sorting.
func WithLanguage(tag language.Tag) Option {
	return func(s *Session) { s.lang = tag }
}

// WithSort applies key once the initial view is computed. Unknown keys are
// ignored.
func WithSort(key SortKey) Option {
	return func(s *Session) {
		if _, err := ParseSortKey(string(key)); err == nil {
			s.sortKey = key
		}
	}
}

// NewSession starts a session over items from a restored state (typically
// Deserialize of the address bar). The state is normalized and its page
// clamped, then the first render happens.
func NewSession(items []models.Item, st State, opts ...Option) *Session {
	s := &Session{
		lang:     language.English,
		renderer: nopRenderer{},
		history:  nopHistory{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if letter, ok := NormalizeLetter(st.Letter); ok {
		st.Letter = letter
	} else {
		st.Letter = ""
	}
	s.state = st
	s.setItems(items)
	s.refresh()
	return s
}

// Load fully replaces the collection. Filters are kept, the page is clamped.
func (s *Session) Load(items []models.Item) {
	s.setItems(items)
	s.refresh()
}

func (s *Session) setItems(items []models.Item) {
	s.items = items
	s.genres = Genres(items)
}

func (s *Session) State() State { return s.state }

func (s *Session) View() View { return s.view }

func (s *Session) SortKey() SortKey { return s.sortKey }

func (s *Session) Query() string { return Serialize(s.state) }

func (s *Session) Plan() Plan { return NewPlan(s.view.Page, s.view.TotalPages) }

func (s *Session) Items() []models.Item { return s.items }

// SetGenre filters by genre; "" selects every genre.
func (s *Session) SetGenre(genre string) {
	s.state.Genre = genre
	s.filterChanged()
}

// SetLetter filters by first letter; "" clears the filter, "#" selects
// titles not starting with a latin letter.
func (s *Session) SetLetter(letter string) error {
	normalized, ok := NormalizeLetter(letter)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}
	s.state.Letter = normalized
	s.filterChanged()
	return nil
}

// SetSearch filters by a case-insensitive substring of title or code.
func (s *Session) SetSearch(query string) {
	s.state.Search = query
	s.filterChanged()
}

// Reset clears every filter and the sort order.
func (s *Session) Reset() {
	s.state = DefaultState()
	s.filterChanged()
}

// GoToPage moves to page n. Pages outside [1, TotalPages] are rejected and
// leave the session untouched.
func (s *Session) GoToPage(n int) error {
	if n < 1 || n > max(1, s.view.TotalPages) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, max(1, s.view.TotalPages))
	}
	s.state.Page = n
	s.refresh()
	return nil
}

func (s *Session) Next() error { return s.GoToPage(s.state.Page + 1) }
func (s *Session) Prev() error { return s.GoToPage(s.state.Page - 1) }

// SortBy reorders the visible subset in place and re-cuts the current page.
// The order survives page changes and is dropped by any filter change.
func (s *Session) SortBy(key SortKey) error {
	if err := SortBy(s.view.Visible, key, s.lang); err != nil {
		return err
	}
	s.sortKey = key
	s.view.PageItems = PageSlice(s.view.Visible, s.view.Page)
	s.render()
	return nil
}

// Select returns the item with id for the detail overlay.
func (s *Session) Select(id string) (models.Item, error) {
	for _, it := range s.items {
		if string(it.ID) == id {
			return it, nil
		}
	}
	return models.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Tags derives the genre tag list from the current state: "All" first, then
// every genre of the collection in first-seen order.
func (s *Session) Tags() []Tag {
	tags := make([]Tag, 0, len(s.genres)+1)
	tags = append(tags, Tag{Label: AllGenresLabel, Active: s.state.Genre == ""})
	for _, g := range s.genres {
		tags = append(tags, Tag{Label: g, Genre: g, Active: g == s.state.Genre})
	}
	return tags
}

// Letters derives the alphabet navigation from the current state.
func (s *Session) Letters() []Letter {
	out := make([]Letter, 0, len(Letters))
	for _, r := range Letters {
		l := string(r)
		out = append(out, Letter{Label: l, Active: l == s.state.Letter})
	}
	return out
}

func (s *Session) filterChanged() {
	s.state.Page = 1
	s.sortKey = SortNone
	s.refresh()
}

func (s *Session) refresh() {
	s.view = Materialize(s.items, s.state)
	s.state.Page = s.view.Page
	if s.sortKey != SortNone {
		_ = SortBy(s.view.Visible, s.sortKey, s.lang)
		s.view.PageItems = PageSlice(s.view.Visible, s.view.Page)
	}
	s.render()
	s.history.Replace(s.Query())
}

func (s *Session) render() {
	s.renderer.RenderItems(s.view.PageItems, s.view.Total())
	s.renderer.RenderTags(s.Tags())
	s.renderer.RenderLetters(s.Letters())
	s.renderer.RenderPagination(s.Plan())
}

type nopRenderer struct{}

func (nopRenderer) RenderItems([]models.Item, int) {}

func (nopRenderer) RenderTags([]Tag) {}

func (nopRenderer) RenderLetters([]Letter) {}

func (nopRenderer) RenderPagination(Plan) {}

type nopHistory struct{}

func (nopHistory) Replace(string) {}
