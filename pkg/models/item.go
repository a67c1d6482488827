package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Item is one manga bookmark entry of the catalog. It is never modified
// after the loader hands it out.
type Item struct {
	ID       ItemID   `json:"id"`
	Title    string   `json:"title"`
	Code     string   `json:"code"`
	Genres   []string `json:"genres"`
	Status   string   `json:"status,omitempty"`
	Cover    string   `json:"cover,omitempty"`
	Synopsis string   `json:"synopsis,omitempty"`
	Rating   float64  `json:"rating"`
	URL      string   `json:"url,omitempty"`
}

// CardGenres returns the genres shown on a catalog card (at most two).
func (it Item) CardGenres() []string {
	if len(it.Genres) <= 2 {
		return it.Genres
	}
	return it.Genres[:2]
}

// HasGenre reports exact membership of genre in the item's genre set.
func (it Item) HasGenre(genre string) bool {
	for _, g := range it.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// ItemID is the item identifier. Source payloads use either JSON numbers or
// strings, both are kept as their decimal/string form.
type ItemID string

func (id ItemID) String() string { return string(id) }

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		*id = ItemID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ItemID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ItemID(n.String())
	return nil
}

func (id ItemID) MarshalJSON() ([]byte, error) {
	// numeric ids go back out as numbers, "007" stays a string
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}
