package browser

import (
	"errors"
	"strings"
)

// PageSize is the number of cards shown per page.
const PageSize = 12

// LetterOther is the letter bucket for titles that do not start with a
// latin letter.
const LetterOther = "#"

// Letters is the alphabet navigation, in display order.
const Letters = "#ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrInvalidLetter  = errors.New("invalid letter")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrUnknownSortKey = errors.New("unknown sort key")
	ErrItemNotFound   = errors.New("item not found")
)

// State is the filter state that drives the visible subset. The zero value
// of Genre, Letter and Search means "no filter" for that dimension.
type State struct {
	Genre  string
	Letter string
	Search string
	Page   int
}

// DefaultState is the unfiltered first page.
func DefaultState() State {
	return State{Page: 1}
}

// IsFiltered reports whether any filter dimension is active.
func (s State) IsFiltered() bool {
	return s.Genre != "" || s.Letter != "" || s.Search != ""
}

// NormalizeLetter accepts "" (no filter), "#" or a single ASCII letter in
// either case. Letters are returned upper-cased.
func NormalizeLetter(letter string) (string, bool) {
	switch {
	case letter == "":
		return "", true
	case letter == LetterOther:
		return LetterOther, true
	case len(letter) == 1 && isASCIILetter(rune(letter[0])):
		return strings.ToUpper(letter), true
	default:
		return "", false
	}
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
