package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mangashelf/internal/browser"
	"mangashelf/pkg/models"
)

const cardWidth = 56

type styles struct {
	card     lipgloss.Style
	title    lipgloss.Style
	muted    lipgloss.Style
	genre    lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	rating   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f9fb0")).
			Padding(0, 1).
			Width(cardWidth),
		title:    r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("#6c757d")),
		genre:    r.NewStyle().Foreground(lipgloss.Color("#d16d7a")),
		active:   r.NewStyle().Bold(true).Underline(true),
		inactive: r.NewStyle().Foreground(lipgloss.Color("#6c757d")),
		rating:   r.NewStyle().Foreground(lipgloss.Color("#f39c12")).Bold(true),
	}
}

// termRenderer draws a session as terminal cards. Sections are buffered and
// written by Flush in reading order: tags, letters, cards, pagination.
type termRenderer struct {
	w  io.Writer
	st styles

	tags       string
	letters    string
	cards      string
	pagination string
	query      string
}

func newTermRenderer(w io.Writer) *termRenderer {
	return &termRenderer{w: w, st: newStyles(lipgloss.NewRenderer(w))}
}

func (t *termRenderer) RenderItems(page []models.Item, total int) {
	if len(page) == 0 {
		t.cards = t.st.muted.Render("No manga found.")
		return
	}
	blocks := make([]string, 0, len(page)+1)
	blocks = append(blocks, t.st.muted.Render(fmt.Sprintf("%d titles", total)))
	for _, it := range page {
		blocks = append(blocks, t.card(it))
	}
	t.cards = lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (t *termRenderer) RenderTags(tags []browser.Tag) {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, t.toggle(tag.Label, tag.Active))
	}
	t.tags = strings.Join(parts, "  ")
}

func (t *termRenderer) RenderLetters(letters []browser.Letter) {
	parts := make([]string, 0, len(letters))
	for _, l := range letters {
		parts = append(parts, t.toggle(l.Label, l.Active))
	}
	t.letters = strings.Join(parts, " ")
}

func (t *termRenderer) RenderPagination(plan browser.Plan) {
	if !plan.Visible {
		t.pagination = ""
		return
	}
	prev := t.st.inactive.Render("‹")
	if plan.HasPrev {
		prev = "‹"
	}
	parts := []string{prev}
	for _, e := range plan.Entries {
		if e.Ellipsis {
			parts = append(parts, t.st.muted.Render("…"))
			continue
		}
		label := strconv.Itoa(e.Page)
		if e.Active {
			label = "[" + label + "]"
		}
		parts = append(parts, t.toggle(label, e.Active))
	}
	if plan.HasNext {
		parts = append(parts, "›")
	} else {
		parts = append(parts, t.st.inactive.Render("›"))
	}
	t.pagination = strings.Join(parts, " ")
}

func (t *termRenderer) Replace(query string) { t.query = query }

func (t *termRenderer) Flush() error {
	sections := []string{t.tags, t.letters, t.cards}
	if t.pagination != "" {
		sections = append(sections, t.pagination)
	}
	if t.query != "" {
		sections = append(sections, t.st.muted.Render("query: "+t.query))
	}
	_, err := fmt.Fprintln(t.w, strings.Join(sections, "\n\n"))
	return err
}

func (t *termRenderer) toggle(label string, active bool) string {
	if active {
		return t.st.active.Render(label)
	}
	return label
}

func (t *termRenderer) card(it models.Item) string {
	lines := []string{t.st.title.Render(it.Title)}
	meta := []string{it.Code}
	if it.Status != "" {
		meta = append(meta, it.Status)
	}
	lines = append(lines, t.st.muted.Render(strings.Join(meta, " · ")))
	if genres := it.CardGenres(); len(genres) > 0 {
		lines = append(lines, t.st.genre.Render(strings.Join(genres, ", ")))
	}
	if it.Rating > 0 {
		lines = append(lines, t.st.rating.Render("★ "+strconv.FormatFloat(it.Rating, 'f', 1, 64)))
	}
	lines = append(lines, t.st.muted.Render("id "+it.ID.String()))
	return t.st.card.Render(strings.Join(lines, "\n"))
}

func (t *termRenderer) detail(it models.Item) string {
	lines := []string{t.st.title.Render(it.Title), t.st.muted.Render(it.Code)}
	if it.Status != "" {
		lines = append(lines, "Status: "+it.Status)
	}
	if len(it.Genres) > 0 {
		lines = append(lines, t.st.genre.Render(strings.Join(it.Genres, ", ")))
	}
	if it.Rating > 0 {
		lines = append(lines, t.st.rating.Render("★ "+strconv.FormatFloat(it.Rating, 'f', 1, 64)))
	}
	if it.Synopsis != "" {
		lines = append(lines, "", it.Synopsis)
	}
	if it.URL != "" {
		lines = append(lines, "", "Read: "+it.URL)
	}
	return t.st.card.Render(strings.Join(lines, "\n"))
}
