package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mangashelf/pkg/models"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	in := "\ufeffID,Title,Genres,Rating,URL,Extra\n" +
		`1,Naruto,"Action, Adventure",8.5,https://example.com/naruto,x` + "\n" +
		`2,Bleach,"[""Action""]",,,` + "\n" +
		`,No id,Drama,1,,` + "\n" +
		`4,,Drama,1,,` + "\n"

	items, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, models.Item{
		ID:     "1",
		Title:  "Naruto",
		Genres: []string{"Action", "Adventure"},
		Rating: 8.5,
		URL:    "https://example.com/naruto",
	}, items[0])
	require.Equal(t, []string{"Action"}, items[1].Genres)
	require.Zero(t, items[1].Rating)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("title\nNaruto\n"))
	require.ErrorContains(t, err, "missing id column")

	_, err = ReadCSV(strings.NewReader("id,title,rating\n1,Naruto,high\n"))
	require.ErrorContains(t, err, "line 2")
}

func TestWriteCSVReadsBack(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{ID: "1", Title: "Naruto, the Series", Code: "NAR", Genres: []string{"Action", "Adventure"}, Rating: 8.5, Synopsis: "Line one\nline two"},
		{ID: "007", Title: "Akira", Genres: []string{}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, items))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, items, back)
}
