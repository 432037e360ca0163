package drr

import "sort"

// MemberOrdering establishes the total order over member ids that the replica grouper walks.
// Less must be a strict total order: for distinct ids exactly one of Less(a, b) and
// Less(b, a) holds.
type MemberOrdering interface {
	Less(a, b string) bool
}

// MemberOrderingFunc adapts a plain function to MemberOrdering.
type MemberOrderingFunc func(a, b string) bool

// Less implements MemberOrdering.
func (f MemberOrderingFunc) Less(a, b string) bool { return f(a, b) }

// LexicographicOrdering orders member ids byte-wise, the order Kafka's own assignors use.
var LexicographicOrdering MemberOrdering = MemberOrderingFunc(func(a, b string) bool { return a < b })

// sortMemberIDs sorts ids in place.
func sortMemberIDs(ids []string, ordering MemberOrdering) {
	sort.SliceStable(ids, func(i, j int) bool {
		return ordering.Less(ids[i], ids[j])
	})
}
