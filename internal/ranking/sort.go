package ranking

import "sort"

// scored decorates an item with its computed score for sorting.
type scored[T any] struct {
	Item  T
	Score float64
}

// sortByScore orders items by score descending. The sort is stable: items
// with equal scores keep their relative input order. Every scorer delegates
// here so tie-break semantics match across surfaces.
func sortByScore[T any](items []scored[T]) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	out := make([]T, len(items))
	for i, s := range items {
		out[i] = s.Item
	}
	return out
}
