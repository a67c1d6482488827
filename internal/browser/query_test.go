package browser

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Serialize(DefaultState()))
	require.Equal(t, "", Serialize(State{Page: 0}))
}

func TestSerializeOmitsDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, "page=2", Serialize(State{Page: 2}))
	require.Equal(t, "genre=Slice+of+Life", Serialize(State{Genre: "Slice of Life", Page: 1}))
	require.Equal(t, "letter=%23", Serialize(State{Letter: "#", Page: 1}))
	require.Equal(t, "page=3&genre=Action&letter=N&search=one+piece",
		Serialize(State{Page: 3, Genre: "Action", Letter: "N", Search: "one piece"}))
}

func TestDeserializeDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultState(), Deserialize(""))
	require.Equal(t, DefaultState(), Deserialize("?"))
	require.Equal(t, DefaultState(), Deserialize("page=abc"))
	require.Equal(t, DefaultState(), Deserialize("page=-4"))
	require.Equal(t, DefaultState(), Deserialize("page=0&letter=ab"))
	require.Equal(t, DefaultState(), Deserialize("letter=7"))
}

func TestDeserializeValues(t *testing.T) {
	t.Parallel()

	st := Deserialize("?page=4&genre=Action&letter=n&search=Naru")
	require.Equal(t, State{Page: 4, Genre: "Action", Letter: "N", Search: "Naru"}, st)

	st = Deserialize("letter=%23")
	require.Equal(t, LetterOther, st.Letter)

	// a broken pair does not discard the others
	st = Deserialize("genre=Drama&bad=%zz&page=2")
	require.Equal(t, "Drama", st.Genre)
	require.Equal(t, 2, st.Page)
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	states := []State{
		DefaultState(),
		{Page: 7},
		{Page: 1, Genre: "Action"},
		{Page: 1, Genre: "Sci-Fi & Fantasy"},
		{Page: 2, Letter: "#"},
		{Page: 1, Letter: "Z", Search: "  spaced  "},
		{Page: 12, Genre: "Romance", Letter: "Q", Search: "a+b=c&d?e#f%"},
		{Page: 1, Search: "日本"},
	}
	for _, st := range states {
		require.Equal(t, st, Deserialize(Serialize(st)), "state %+v", st)
		require.Equal(t, st, Deserialize("?"+Serialize(st)), "state %+v", st)
	}
}

func TestFromValuesMatchesDeserialize(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set(ParamPage, "5")
	values.Set(ParamGenre, "Horror")
	values.Set(ParamLetter, "h")
	require.Equal(t, Deserialize(values.Encode()), FromValues(values))
}

func TestWithQuery(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/", WithQuery("/", DefaultState()))
	require.Equal(t, "/?page=2", WithQuery("/", State{Page: 2}))
}
