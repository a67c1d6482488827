package web

import (
	"net/url"
	"strconv"
	"strings"

	"mangashelf/internal/browser"
	"mangashelf/pkg/models"
)

// Card is one catalog entry as the template shows it.
type Card struct {
	ID        string
	Title     string
	Code      string
	Status    string
	Cover     string
	Synopsis  string
	Genres    []string
	Rating    string
	DetailURL string
	ReadURL   string
}

type Link struct {
	Label  string
	URL    string
	Active bool
}

type PageLink struct {
	Label    string
	URL      string
	Active   bool
	Ellipsis bool
}

type Pagination struct {
	Visible bool
	Pages   []PageLink
	PrevURL string
	NextURL string
}

// PageData feeds index.html.
type PageData struct {
	Title        string
	CanonicalURL string
	AddressURL   string
	State        browser.State
	Sort         browser.SortKey
	Total        int
	Cards        []Card
	Tags         []Link
	Letters      []Link
	ClearLetter  string
	SortLinks    []Link
	ResetURL     string
	Pagination   Pagination
}

func (d PageData) Empty() bool { return len(d.Cards) == 0 }

// pageView collects what a Session renders into a PageData. It is both the
// Renderer and the History of a request-scoped session.
type pageView struct {
	path  string
	sort  browser.SortKey
	state browser.State
	data  PageData
}

func newPageView(path string) *pageView {
	return &pageView{path: path, data: PageData{Title: "Manga Shelf"}}
}

// bind rebuilds the links from the session's settled state. The renders
// made inside NewSession ran before the page was clamped.
func (v *pageView) bind(s *browser.Session) PageData {
	v.state = s.State()
	v.sort = s.SortKey()
	v.RenderTags(s.Tags())
	v.RenderLetters(s.Letters())
	v.RenderPagination(s.Plan())

	v.Replace(s.Query())
	v.data.AddressURL = withSort(v.data.CanonicalURL, v.sort)
	v.data.State = v.state
	v.data.Sort = v.sort
	v.data.ResetURL = v.path
	v.data.SortLinks = []Link{
		{Label: "Default", URL: v.link(v.state, browser.SortNone), Active: v.sort == browser.SortNone},
		{Label: "Title", URL: v.link(v.state, browser.SortTitle), Active: v.sort == browser.SortTitle},
		{Label: "Rating", URL: v.link(v.state, browser.SortRating), Active: v.sort == browser.SortRating},
	}
	noLetter := v.state
	noLetter.Letter = ""
	noLetter.Page = 1
	v.data.ClearLetter = v.link(noLetter, browser.SortNone)
	return v.data
}

func (v *pageView) RenderItems(page []models.Item, total int) {
	cards := make([]Card, 0, len(page))
	for _, it := range page {
		cards = append(cards, newCard(it))
	}
	v.data.Cards = cards
	v.data.Total = total
}

func (v *pageView) RenderTags(tags []browser.Tag) {
	links := make([]Link, 0, len(tags))
	for _, t := range tags {
		st := v.state
		st.Genre = t.Genre
		st.Page = 1
		links = append(links, Link{Label: t.Label, URL: v.link(st, browser.SortNone), Active: t.Active})
	}
	v.data.Tags = links
}

func (v *pageView) RenderLetters(letters []browser.Letter) {
	links := make([]Link, 0, len(letters))
	for _, l := range letters {
		st := v.state
		st.Letter = l.Label
		st.Page = 1
		links = append(links, Link{Label: l.Label, URL: v.link(st, browser.SortNone), Active: l.Active})
	}
	v.data.Letters = links
}

func (v *pageView) RenderPagination(plan browser.Plan) {
	p := Pagination{Visible: plan.Visible}
	for _, e := range plan.Entries {
		if e.Ellipsis {
			p.Pages = append(p.Pages, PageLink{Label: "…", Ellipsis: true})
			continue
		}
		p.Pages = append(p.Pages, PageLink{
			Label:  strconv.Itoa(e.Page),
			URL:    v.pageLink(e.Page),
			Active: e.Active,
		})
	}
	if plan.HasPrev {
		p.PrevURL = v.pageLink(plan.Prev)
	}
	if plan.HasNext {
		p.NextURL = v.pageLink(plan.Next)
	}
	v.data.Pagination = p
}

func (v *pageView) Replace(query string) {
	if query == "" {
		v.data.CanonicalURL = v.path
		return
	}
	v.data.CanonicalURL = v.path + "?" + query
}

// pageLink keeps the active sort; only filter changes drop it.
func (v *pageView) pageLink(page int) string {
	st := v.state
	st.Page = page
	return v.link(st, v.sort)
}

func (v *pageView) link(st browser.State, sort browser.SortKey) string {
	return withSort(browser.WithQuery(v.path, st), sort)
}

func withSort(u string, sort browser.SortKey) string {
	if sort == browser.SortNone {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + ParamSort + "=" + url.QueryEscape(string(sort))
}

func newCard(it models.Item) Card {
	c := Card{
		ID:        it.ID.String(),
		Title:     it.Title,
		Code:      it.Code,
		Status:    it.Status,
		Cover:     it.Cover,
		Synopsis:  it.Synopsis,
		Genres:    it.CardGenres(),
		Rating:    formatRating(it.Rating),
		DetailURL: "/manga/" + url.PathEscape(it.ID.String()),
	}
	if it.URL != "" {
		c.ReadURL = "/read/" + url.PathEscape(it.ID.String())
	}
	return c
}

func formatRating(r float64) string {
	if r <= 0 {
		return ""
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}
