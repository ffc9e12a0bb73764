// Package groupby provides a generic bucket-by-key reduction. It is used for
// size buckets, inode partitioning and digest grouping, so correctness here
// only requires that records sharing a key end up contiguous; the descending
// key order is cosmetic.
package groupby

import (
	"cmp"
	"slices"
)

// Group is one key together with every record that mapped to it.
type Group[K cmp.Ordered, T any] struct {
	Key     K
	Records []T
}

// ByKey buckets records by the extracted key and returns the groups sorted by
// key in descending order. Records within a group keep their input order.
func ByKey[K cmp.Ordered, T any](records []T, key func(T) K) []Group[K, T] {
	buckets := make(map[K][]T)
	keys := make([]K, 0)

	for _, r := range records {
		k := key(r)
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], r)
	}

	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(b, a)
	})

	groups := make([]Group[K, T], 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group[K, T]{Key: k, Records: buckets[k]})
	}

	return groups
}
