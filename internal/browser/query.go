package browser

import (
	"net/url"
	"strconv"
	"strings"
)

// Query string keys shared by the page, the API and the CLI.
const (
	ParamPage   = "page"
	ParamGenre  = "genre"
	ParamLetter = "letter"
	ParamSearch = "search"
)

// Serialize encodes st as a query string without the leading "?". Keys at
// their default are omitted, an unfiltered first page encodes to "".
func Serialize(st State) string {
	var parts []string
	if st.Page > 1 {
		parts = append(parts, ParamPage+"="+strconv.Itoa(st.Page))
	}
	if st.Genre != "" {
		parts = append(parts, ParamGenre+"="+url.QueryEscape(st.Genre))
	}
	if st.Letter != "" {
		parts = append(parts, ParamLetter+"="+url.QueryEscape(st.Letter))
	}
	if st.Search != "" {
		parts = append(parts, ParamSearch+"="+url.QueryEscape(st.Search))
	}
	return strings.Join(parts, "&")
}

// Deserialize restores a State from a query string, with or without the
// leading "?". Malformed values fall back to their defaults.
func Deserialize(query string) State {
	// ParseQuery keeps every pair it could decode even when it reports an error
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return FromValues(values)
}

// FromValues is Deserialize for already parsed values.
func FromValues(values url.Values) State {
	st := DefaultState()
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil && n >= 1 {
		st.Page = n
	}
	st.Genre = values.Get(ParamGenre)
	if letter, ok := NormalizeLetter(values.Get(ParamLetter)); ok {
		st.Letter = letter
	}
	st.Search = values.Get(ParamSearch)
	return st
}

// WithQuery appends the serialized state to path.
func WithQuery(path string, st State) string {
	q := Serialize(st)
	if q == "" {
		return path
	}
	return path + "?" + q
}
