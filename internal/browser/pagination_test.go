package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// layout renders entries as ints with 0 for an ellipsis.
func layout(entries []PageEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.Ellipsis {
			out = append(out, 0)
			continue
		}
		out = append(out, e.Page)
	}
	return out
}

func TestBuildPageListSinglePage(t *testing.T) {
	t.Parallel()

	require.Empty(t, BuildPageList(1, 0))
	require.Empty(t, BuildPageList(1, 1))
}

func TestBuildPageListLayouts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"two pages", 1, 2, []int{1, 2}},
		{"exactly five", 3, 5, []int{1, 2, 3, 4, 5}},
		{"start of ten", 1, 10, []int{1, 2, 3, 4, 5, 0, 10}},
		{"middle of ten", 5, 10, []int{1, 0, 3, 4, 5, 6, 7, 0, 10}},
		{"end of ten", 10, 10, []int{1, 0, 6, 7, 8, 9, 10}},
		{"adjacent first page", 4, 10, []int{1, 2, 3, 4, 5, 6, 0, 10}},
		{"adjacent last page", 7, 10, []int{1, 0, 5, 6, 7, 8, 9, 10}},
		{"six pages from the start", 3, 6, []int{1, 2, 3, 4, 5, 6}},
		{"current beyond total", 40, 6, []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, layout(BuildPageList(tc.current, tc.total)))
		})
	}
}

func TestBuildPageListBounds(t *testing.T) {
	t.Parallel()

	for total := 0; total <= 30; total++ {
		for current := -1; current <= total+2; current++ {
			numbered := 0
			for _, e := range BuildPageList(current, total) {
				if e.Ellipsis {
					continue
				}
				require.GreaterOrEqual(t, e.Page, 1)
				require.LessOrEqual(t, e.Page, total)
				numbered++
			}
			// window plus first and last page
			require.LessOrEqual(t, numbered, window+2)
		}
	}
}

func TestBuildPageListMarksActive(t *testing.T) {
	t.Parallel()

	var active []int
	for _, e := range BuildPageList(4, 9) {
		if e.Active {
			active = append(active, e.Page)
		}
	}
	require.Equal(t, []int{4}, active)
}

func TestNewPlan(t *testing.T) {
	t.Parallel()

	plan := NewPlan(1, 3)
	require.True(t, plan.Visible)
	require.False(t, plan.HasPrev)
	require.True(t, plan.HasNext)
	require.Equal(t, 2, plan.Next)

	plan = NewPlan(3, 3)
	require.True(t, plan.HasPrev)
	require.False(t, plan.HasNext)
	require.Equal(t, 2, plan.Prev)

	plan = NewPlan(1, 1)
	require.False(t, plan.Visible)
	require.Empty(t, plan.Entries)
}
