package popup

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search fuzzy-matches query against the id, template and title of every
// live popup and returns the matches best first. An empty query returns all
// live popups in stacking order.
func (m *Manager) Search(query string) []Record {
	var live []*Record
	for _, r := range m.items {
		if !r.gone() {
			live = append(live, r)
		}
	}
	if query == "" {
		out := make([]Record, len(live))
		for i, r := range live {
			out[i] = r.Snapshot()
		}
		return out
	}

	var targets []string
	var owner []int
	for i, r := range live {
		for _, s := range []string{r.ID, r.Options.Template, r.Options.Title} {
			if s == "" {
				continue
			}
			targets = append(targets, s)
			owner = append(owner, i)
		}
	}
	best := make(map[int]int)
	for _, rank := range fuzzy.RankFindFold(query, targets) {
		i := owner[rank.OriginalIndex]
		if d, ok := best[i]; !ok || rank.Distance < d {
			best[i] = rank.Distance
		}
	}
	matched := make([]int, 0, len(best))
	for i := range best {
		matched = append(matched, i)
	}
	sort.Slice(matched, func(a, b int) bool {
		da, db := best[matched[a]], best[matched[b]]
		if da != db {
			return da < db
		}
		return matched[a] < matched[b]
	})
	out := make([]Record, len(matched))
	for k, i := range matched {
		out[k] = live[i].Snapshot()
	}
	return out
}
