//go:build !functional

package drr

import (
	"reflect"
	"strings"
	"testing"
)

func TestSortMemberIDsLexicographic(t *testing.T) {
	ids := []string{"B-1", "A-2", "a-1", "A-1", "A-10"}
	sortMemberIDs(ids, LexicographicOrdering)

	expected := []string{"A-1", "A-10", "A-2", "B-1", "a-1"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Unexpected order\nexpected: %v\nactual: %v", expected, ids)
	}
}

func TestSortMemberIDsIsStableAcrossCalls(t *testing.T) {
	first := []string{"m3", "m1", "m2"}
	second := []string{"m2", "m3", "m1"}
	sortMemberIDs(first, LexicographicOrdering)
	sortMemberIDs(second, LexicographicOrdering)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Same member set sorted differently: %v vs %v", first, second)
	}
}

func TestSortMemberIDsCustomOrdering(t *testing.T) {
	caseInsensitive := MemberOrderingFunc(func(a, b string) bool {
		return strings.ToLower(a) < strings.ToLower(b)
	})
	ids := []string{"b", "C", "a"}
	sortMemberIDs(ids, caseInsensitive)

	expected := []string{"a", "b", "C"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Unexpected order\nexpected: %v\nactual: %v", expected, ids)
	}
}
