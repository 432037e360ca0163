package drr

// noneAssigned is the initial value of every rotation cursor, one step before index 0.
const noneAssigned = -1

// nextIndex advances a rotation cursor over modulus slots.
func nextIndex(cursor, modulus int) int {
	return (cursor + 1) % modulus
}

// distribute deals partitions out over groups, rotating across groups first and then across
// the members of the selected group. partitions must be sorted ascending. The group cursor
// moves once per partition, while a group's member cursor only moves when that group is
// selected, which bounds per-group and per-member count differences to one.
func distribute(groups []*replicaGroup, partitions []int32, assign func(memberID string, partition int32)) {
	if len(groups) == 0 {
		return
	}

	groupCursor := noneAssigned
	for _, partition := range partitions {
		groupCursor = nextIndex(groupCursor, len(groups))
		group := groups[groupCursor]
		group.cursor = nextIndex(group.cursor, len(group.members))
		assign(group.members[group.cursor], partition)
	}
}
