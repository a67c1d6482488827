package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLetter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"#", "#", true},
		{"a", "A", true},
		{"Z", "Z", true},
		{"ab", "", false},
		{"1", "", false},
		{"Ō", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeLetter(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestBucketOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, "N", BucketOf("naruto"))
	require.Equal(t, LetterOther, BucketOf("9-Tails"))
	require.Equal(t, LetterOther, BucketOf("Ōkami"))
	require.Equal(t, LetterOther, BucketOf(""))
}

func TestIsFiltered(t *testing.T) {
	t.Parallel()

	require.False(t, DefaultState().IsFiltered())
	require.False(t, State{Page: 4}.IsFiltered())
	require.True(t, State{Search: "x", Page: 1}.IsFiltered())
}
