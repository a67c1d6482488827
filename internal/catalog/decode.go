package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"mangashelf/pkg/models"
)

var (
	ErrEmptyPayload     = errors.New("empty payload")
	ErrMalformedPayload = errors.New("malformed payload")
)

// LoadError is the single failure class of the loader: the source could not
// be reached, answered non-2xx, or sent something that is not a non-empty
// item array.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Dropped describes an item Decode refused to keep.
type Dropped struct {
	Index  int
	ID     string
	Reason string
}

// Decode parses a catalog payload and normalizes its items. Items with an
// empty title or a repeated id are dropped and reported.
func Decode(data []byte) ([]models.Item, []Dropped, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, ErrEmptyPayload
	}
	if data[0] != '[' {
		return nil, nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedPayload)
	}

	var raw []models.Item
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(raw) == 0 {
		return nil, nil, ErrEmptyPayload
	}

	items, dropped := Normalize(raw)
	if len(items) == 0 {
		return nil, dropped, fmt.Errorf("%w: no usable items", ErrMalformedPayload)
	}
	return items, dropped, nil
}

// Normalize strips markup from every item and drops the ones with an empty
// title or an id already seen. Items without an id get their 1-based
// position, skipping any id the payload uses explicitly. Order is preserved.
func Normalize(raw []models.Item) ([]models.Item, []Dropped) {
	policy := bluemonday.StrictPolicy()
	explicit := make(map[models.ItemID]struct{}, len(raw))
	for _, it := range raw {
		if it.ID != "" {
			explicit[it.ID] = struct{}{}
		}
	}

	seen := make(map[models.ItemID]struct{}, len(raw))
	items := make([]models.Item, 0, len(raw))
	var dropped []Dropped
	next := 0
	for i, it := range raw {
		it = normalize(policy, it)
		if it.ID == "" {
			it.ID, next = positionalID(explicit, seen, max(next, i+1))
		}
		if it.Title == "" {
			dropped = append(dropped, Dropped{Index: i, ID: it.ID.String(), Reason: "empty title"})
			continue
		}
		if _, dup := seen[it.ID]; dup {
			dropped = append(dropped, Dropped{Index: i, ID: it.ID.String(), Reason: "duplicate id"})
			continue
		}
		seen[it.ID] = struct{}{}
		items = append(items, it)
	}
	return items, dropped
}

func positionalID(explicit, seen map[models.ItemID]struct{}, n int) (models.ItemID, int) {
	for {
		id := models.ItemID(strconv.Itoa(n))
		_, taken := explicit[id]
		_, used := seen[id]
		if !taken && !used {
			return id, n + 1
		}
		n++
	}
}

// normalize strips markup from display text and de-duplicates genres.
// URLs are kept verbatim.
func normalize(p *bluemonday.Policy, it models.Item) models.Item {
	it.Title = clean(p, it.Title)
	it.Code = clean(p, it.Code)
	it.Status = clean(p, it.Status)
	it.Synopsis = clean(p, it.Synopsis)
	it.Cover = strings.TrimSpace(it.Cover)
	it.URL = strings.TrimSpace(it.URL)

	genres := make([]string, 0, len(it.Genres))
	seen := make(map[string]struct{}, len(it.Genres))
	for _, g := range it.Genres {
		g = clean(p, g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	it.Genres = genres
	return it
}

func clean(p *bluemonday.Policy, s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	// templates escape on output, so store plain text
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}
