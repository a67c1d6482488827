package browser

// window is the maximum number of numbered buttons around the current page.
const window = 5

// PageEntry is one control of the pagination bar: a page button or an
// ellipsis gap.
type PageEntry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Active   bool `json:"active,omitempty"`
}

// Plan describes the whole pagination bar.
type Plan struct {
	Visible bool        `json:"visible"`
	Current int         `json:"current"`
	Total   int         `json:"total"`
	Entries []PageEntry `json:"entries"`
	HasPrev bool        `json:"has_prev"`
	HasNext bool        `json:"has_next"`
	Prev    int         `json:"prev,omitempty"`
	Next    int         `json:"next,omitempty"`
}

// BuildPageList lays out at most five numbered buttons centred on current,
// plus the first and last page separated by an ellipsis when they fall
// outside the window. totalPages <= 1 yields no controls.
func BuildPageList(current, totalPages int) []PageEntry {
	if totalPages <= 1 {
		return []PageEntry{}
	}
	current = ClampPage(current, totalPages)

	start := max(1, current-window/2)
	end := min(totalPages, start+window-1)
	start = max(1, end-window+1)

	entries := make([]PageEntry, 0, window+4)
	if start > 1 {
		entries = append(entries, PageEntry{Page: 1})
		if start > 2 {
			entries = append(entries, PageEntry{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		entries = append(entries, PageEntry{Page: p, Active: p == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			entries = append(entries, PageEntry{Ellipsis: true})
		}
		entries = append(entries, PageEntry{Page: totalPages})
	}
	return entries
}

// NewPlan builds the pagination bar including previous/next state.
func NewPlan(current, totalPages int) Plan {
	if totalPages <= 1 {
		return Plan{Current: ClampPage(current, totalPages), Total: totalPages, Entries: []PageEntry{}}
	}
	current = ClampPage(current, totalPages)
	plan := Plan{
		Visible: true,
		Current: current,
		Total:   totalPages,
		Entries: BuildPageList(current, totalPages),
		HasPrev: current > 1,
		HasNext: current < totalPages,
	}
	if plan.HasPrev {
		plan.Prev = current - 1
	}
	if plan.HasNext {
		plan.Next = current + 1
	}
	return plan
}
