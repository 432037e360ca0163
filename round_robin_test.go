//go:build !functional

package drr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIndex(t *testing.T) {
	assert.Equal(t, 0, nextIndex(noneAssigned, 3))
	assert.Equal(t, 1, nextIndex(0, 3))
	assert.Equal(t, 0, nextIndex(2, 3))
	assert.Equal(t, 0, nextIndex(0, 1))
}

type assignedPartition struct {
	memberID  string
	partition int32
}

func recordDistribution(groups []*replicaGroup, partitions []int32) []assignedPartition {
	var trace []assignedPartition
	distribute(groups, partitions, func(memberID string, partition int32) {
		trace = append(trace, assignedPartition{memberID, partition})
	})
	return trace
}

func TestDistributeRotatesGroupsThenMembers(t *testing.T) {
	groups := []*replicaGroup{
		newReplicaGroup([]string{"A-1", "A-2"}),
		newReplicaGroup([]string{"B-1"}),
	}

	trace := recordDistribution(groups, []int32{0, 1, 2, 3})

	assert.Equal(t, []assignedPartition{
		{"A-1", 0},
		{"B-1", 1},
		{"A-2", 2},
		{"B-1", 3},
	}, trace)
	assert.Equal(t, 1, groups[0].cursor)
	assert.Equal(t, 0, groups[1].cursor)
}

func TestDistributeUnevenGroups(t *testing.T) {
	groups := []*replicaGroup{
		newReplicaGroup([]string{"A-1", "A-2", "A-3"}),
		newReplicaGroup([]string{"B-1"}),
		newReplicaGroup([]string{"C-1", "C-2"}),
	}

	trace := recordDistribution(groups, []int32{0, 1, 2, 3, 4, 5, 6, 7})

	assert.Equal(t, []assignedPartition{
		{"A-1", 0},
		{"B-1", 1},
		{"C-1", 2},
		{"A-2", 3},
		{"B-1", 4},
		{"C-2", 5},
		{"A-3", 6},
		{"B-1", 7},
	}, trace)
}

func TestDistributeNothing(t *testing.T) {
	groups := []*replicaGroup{newReplicaGroup([]string{"A-1"})}

	assert.Empty(t, recordDistribution(groups, nil))
	assert.Equal(t, noneAssigned, groups[0].cursor)
	assert.Empty(t, recordDistribution(nil, []int32{0, 1}))
}
