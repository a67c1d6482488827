package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemIDAcceptsNumbersAndStrings(t *testing.T) {
	t.Parallel()

	var items []Item
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 12, "title": "a"},
		{"id": " x-1 ", "title": "b"},
		{"id": null, "title": "c"},
		{"id": 1.5, "title": "d"}
	]`), &items))
	require.Equal(t, ItemID("12"), items[0].ID)
	require.Equal(t, ItemID("x-1"), items[1].ID)
	require.Equal(t, ItemID(""), items[2].ID)
	require.Equal(t, ItemID("1.5"), items[3].ID)
}

func TestItemIDMarshalKeepsShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal([]ItemID{"12", "007", "abc"})
	require.NoError(t, err)
	require.JSONEq(t, `[12, "007", "abc"]`, string(b))
}

func TestCardGenres(t *testing.T) {
	t.Parallel()

	it := Item{Genres: []string{"Action", "Adventure", "Comedy"}}
	require.Equal(t, []string{"Action", "Adventure"}, it.CardGenres())
	require.True(t, it.HasGenre("Comedy"))
	require.False(t, it.HasGenre("comedy"), "membership is exact")

	require.Empty(t, Item{}.CardGenres())
}
