package browser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mangashelf/pkg/models"
)

type recorder struct {
	items    [][]models.Item
	totals   []int
	tags     []Tag
	letters  []Letter
	plan     Plan
	renders  int
	replaced []string
}

func (r *recorder) RenderItems(page []models.Item, total int) {
	r.items = append(r.items, page)
	r.totals = append(r.totals, total)
	r.renders++
}

func (r *recorder) RenderTags(tags []Tag) { r.tags = tags }

func (r *recorder) RenderLetters(letters []Letter) { r.letters = letters }

func (r *recorder) RenderPagination(plan Plan) { r.plan = plan }

func (r *recorder) Replace(query string) { r.replaced = append(r.replaced, query) }

func (r *recorder) lastItems() []models.Item { return r.items[len(r.items)-1] }

func (r *recorder) lastQuery() string { return r.replaced[len(r.replaced)-1] }

func newRecordedSession(t *testing.T, items []models.Item, st State, opts ...Option) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append(opts, WithRenderer(rec), WithHistory(rec))
	return NewSession(items, st, opts...), rec
}

func TestNewSessionRestoresAndClamps(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t, numberedItems(25), Deserialize("page=9&letter=t"))
	require.Equal(t, 3, s.State().Page)
	require.Equal(t, "T", s.State().Letter)
	require.Equal(t, 1, rec.renders, "first render happens on construction")
	require.Equal(t, "page=3&letter=T", rec.lastQuery(), "clamped page replaces the address bar")
	require.Equal(t, 25, rec.totals[0])
}

func TestNewSessionDropsInvalidLetter(t *testing.T) {
	t.Parallel()

	s := NewSession(sampleItems(), State{Letter: "??", Page: 1})
	require.Equal(t, "", s.State().Letter)
	require.Equal(t, len(sampleItems()), s.View().Total())
}

func TestFilterChangesResetPage(t *testing.T) {
	t.Parallel()

	items := numberedItems(40)
	for i := range items {
		items[i].Genres = []string{"Action"}
	}

	s, rec := newRecordedSession(t, items, State{Page: 3})
	require.Equal(t, 3, s.State().Page)

	s.SetGenre("Action")
	require.Equal(t, 1, s.State().Page)
	require.Equal(t, "genre=Action", rec.lastQuery())

	require.NoError(t, s.GoToPage(2))
	require.NoError(t, s.SetLetter("t"))
	require.Equal(t, 1, s.State().Page)

	require.NoError(t, s.GoToPage(2))
	s.SetSearch("title")
	require.Equal(t, 1, s.State().Page)
	require.Equal(t, "genre=Action&letter=T&search=title", rec.lastQuery())
}

func TestGoToPageRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t, numberedItems(25), DefaultState())
	require.Equal(t, 3, s.View().TotalPages)

	before := s.State()
	renders := rec.renders
	err := s.GoToPage(5)
	require.ErrorIs(t, err, ErrPageOutOfRange)
	require.Equal(t, before, s.State())
	require.Equal(t, renders, rec.renders, "rejected navigation must not render")

	require.ErrorIs(t, s.GoToPage(0), ErrPageOutOfRange)
	require.ErrorIs(t, s.Prev(), ErrPageOutOfRange)

	require.NoError(t, s.GoToPage(3))
	require.Len(t, rec.lastItems(), 1)
	require.Equal(t, "page=3", rec.lastQuery())
	require.ErrorIs(t, s.Next(), ErrPageOutOfRange)
	require.NoError(t, s.Prev())
	require.Equal(t, 2, s.State().Page)
}

func TestGoToPageOnEmptyCollection(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t, nil, DefaultState())
	require.True(t, s.View().Empty())
	require.False(t, rec.plan.Visible)
	require.NoError(t, s.GoToPage(1))
	require.ErrorIs(t, s.GoToPage(2), ErrPageOutOfRange)
}

func TestSetLetterRejectsInvalid(t *testing.T) {
	t.Parallel()

	s := NewSession(sampleItems(), DefaultState())
	require.NoError(t, s.SetLetter("n"))
	err := s.SetLetter("AB")
	require.ErrorIs(t, err, ErrInvalidLetter)
	require.Equal(t, "N", s.State().Letter)
}

func TestSortByRatingAndTitle(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ID: "1", Title: "Naruto", Genres: []string{"Action"}, Rating: 8.5},
		{ID: "2", Title: "Bleach", Genres: []string{"Action"}, Rating: 7.0},
	}
	s, rec := newRecordedSession(t, items, DefaultState())
	s.SetGenre("Action")
	require.Equal(t, []string{"Naruto", "Bleach"}, titles(s.View().Visible))

	require.NoError(t, s.SortBy(SortRating))
	require.Equal(t, []string{"Naruto", "Bleach"}, titles(s.View().Visible))

	require.NoError(t, s.SortBy(SortTitle))
	require.Equal(t, []string{"Bleach", "Naruto"}, titles(s.View().Visible))
	require.Equal(t, []string{"Bleach", "Naruto"}, titles(rec.lastItems()))

	require.ErrorIs(t, s.SortBy("popularity"), ErrUnknownSortKey)
	require.Equal(t, SortTitle, s.SortKey())
}

func TestSortSurvivesPagingButNotFiltering(t *testing.T) {
	t.Parallel()

	items := numberedItems(25)
	for i := range items {
		items[i].Rating = float64(i)
	}
	s := NewSession(items, DefaultState())
	require.NoError(t, s.SortBy(SortRating))
	require.Equal(t, "Title 25", s.View().PageItems[0].Title)

	require.NoError(t, s.GoToPage(2))
	require.Equal(t, SortRating, s.SortKey())
	require.Equal(t, "Title 13", s.View().PageItems[0].Title)

	s.SetSearch("title")
	require.Equal(t, SortNone, s.SortKey())
	require.Equal(t, "Title 01", s.View().PageItems[0].Title)
}

func TestWithSortAppliesToInitialView(t *testing.T) {
	t.Parallel()

	s := NewSession(sampleItems(), DefaultState(), WithSort(SortRating))
	require.Equal(t, "Ōkami", s.View().PageItems[0].Title)

	s = NewSession(sampleItems(), DefaultState(), WithSort("bogus"))
	require.Equal(t, SortNone, s.SortKey())
}

func TestResetClearsEverything(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t, sampleItems(), State{Genre: "Action", Letter: "N", Search: "nar", Page: 1})
	require.NoError(t, s.SortBy(SortTitle))
	s.Reset()
	require.Equal(t, DefaultState(), s.State())
	require.Equal(t, SortNone, s.SortKey())
	require.Equal(t, "", rec.lastQuery())
	require.Equal(t, len(sampleItems()), s.View().Total())
}

func TestTagsReflectState(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t, sampleItems(), DefaultState())
	require.Equal(t, Tag{Label: AllGenresLabel, Active: true}, rec.tags[0])
	for _, tag := range rec.tags[1:] {
		require.False(t, tag.Active)
	}

	s.SetGenre("Fantasy")
	var active []string
	for _, tag := range rec.tags {
		if tag.Active {
			active = append(active, tag.Label)
		}
	}
	require.Equal(t, []string{"Fantasy"}, active)

	s.SetGenre("")
	require.True(t, s.Tags()[0].Active)
}

func TestLettersReflectState(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t, sampleItems(), DefaultState())
	require.Len(t, rec.letters, len(Letters))
	require.Equal(t, "#", rec.letters[0].Label)

	require.NoError(t, s.SetLetter("#"))
	require.True(t, rec.letters[0].Active)
	require.Equal(t, []string{"9-Tails", "Ōkami"}, titles(s.View().Visible))

	// genre and letter apply together
	s.SetGenre("Action")
	require.Equal(t, []string{"Ōkami"}, titles(s.View().Visible))
	require.True(t, s.Letters()[0].Active)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	s := NewSession(sampleItems(), State{Genre: "Comedy", Page: 1})
	it, err := s.Select("2")
	require.NoError(t, err, "detail lookup covers the whole collection")
	require.Equal(t, "Bleach", it.Title)

	_, err = s.Select("404")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestLoadReplacesCollection(t *testing.T) {
	t.Parallel()

	s := NewSession(numberedItems(30), State{Page: 3})
	require.Equal(t, 3, s.State().Page)

	s.Load(numberedItems(5))
	require.Equal(t, 1, s.State().Page)
	require.Equal(t, 5, s.View().Total())
	require.Len(t, s.Items(), 5)
}
