//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"golang.org/x/exp/constraints"
	"slices"
	"sort"
	"strconv"
)

//
// SETS AND SLICES
//

// Unique - return only the unique items from a slice; first appearance wins the position
func Unique[T comparable](s []T) []T {
	// can't use slices.Compact because that only looks as consecutive repeats: [a, a, b, a] -> [a, b, a]
	seen := make(map[T]struct{}, len(s))
	var result []T
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// StringMapKeysIntoSlice - convert map[string]T to []string
func StringMapKeysIntoSlice[T any](mp map[string]T) []string {
	sl := make([]string, len(mp))
	i := 0
	for k := range mp {
		sl[i] = k
		i += 1
	}
	return sl
}

// SortedKeys - the keys of a map in ascending order
func SortedKeys[K constraints.Ordered, V any](mp map[K]V) []K {
	sl := make([]K, 0, len(mp))
	for k := range mp {
		sl = append(sl, k)
	}
	slices.Sort(sl)
	return sl
}

// NaturallySortedKeys - string keys in ascending order, but "2" before "10" when both are numbers
func NaturallySortedKeys[V any](mp map[string]V) []string {
	sl := StringMapKeysIntoSlice(mp)
	sort.SliceStable(sl, func(i, j int) bool { return NaturalLess(sl[i], sl[j]) })
	return sl
}

// NaturalLess - numeric comparison if both strings are integers; otherwise lexicographic
func NaturalLess(a string, b string) bool {
	x, ea := strconv.Atoi(a)
	y, eb := strconv.Atoi(b)
	if ea == nil && eb == nil && x != y {
		return x < y
	}
	return a < b
}
