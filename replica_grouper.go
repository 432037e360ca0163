package drr

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides which member of a pair classified ReplicaDuplicate keeps its
// eligibility for the topic being assigned. A dropped member receives no partitions of that
// topic; nothing is redirected to it later.
type DuplicatePolicy int8

const (
	// DuplicateDropLeft drops the member that sorts first and keeps comparing from the one
	// that sorts second. This is the behaviour of the original doubleroundrobin assignor.
	DuplicateDropLeft DuplicatePolicy = iota
	// DuplicateDropRight keeps the member that sorts first and drops the one after it.
	// The survivor is then compared against the next member in order.
	DuplicateDropRight
	// DuplicateKeepBoth treats duplicates like ordinary replicas; nobody is dropped.
	DuplicateKeepBoth
)

var duplicatePolicyNames = map[DuplicatePolicy]string{
	DuplicateDropLeft:  "drop-left",
	DuplicateDropRight: "drop-right",
	DuplicateKeepBoth:  "keep-both",
}

func (p DuplicatePolicy) String() string {
	if name, ok := duplicatePolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int8(p))
}

func (p DuplicatePolicy) valid() bool {
	_, ok := duplicatePolicyNames[p]
	return ok
}

// ParseDuplicatePolicy parses the text form of a DuplicatePolicy ("drop-left", "drop-right" or "keep-both").
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	for p, name := range duplicatePolicyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, ConfigurationError(fmt.Sprintf("unknown duplicate policy %q", s))
}

// replicaGroup is one logical consumer within a single topic's distribution. cursor is the
// position of the member that received the group's latest partition.
type replicaGroup struct {
	members []string
	cursor  int
}

func newReplicaGroup(members []string) *replicaGroup {
	return &replicaGroup{members: members, cursor: noneAssigned}
}

type replicaGrouping struct {
	groups  []*replicaGroup
	dropped []string
}

// groupReplicas splits the ordered member ids of one topic into maximal runs of adjacent
// replicas. Only neighbours are compared, so a single linear pass suffices. The last surviving
// member always closes the last group.
func groupReplicas(memberIDs []string, classifier ReplicaClassifier, policy DuplicatePolicy) replicaGrouping {
	var grouping replicaGrouping
	if len(memberIDs) == 0 {
		return grouping
	}

	var open []string
	cur := memberIDs[0]
	for _, next := range memberIDs[1:] {
		switch classifier.Classify(cur, next) {
		case ReplicaSameGroup:
			open = append(open, cur)
			cur = next
		case ReplicaDuplicate:
			switch policy {
			case DuplicateDropRight:
				grouping.dropped = append(grouping.dropped, next)
			case DuplicateKeepBoth:
				open = append(open, cur)
				cur = next
			default:
				grouping.dropped = append(grouping.dropped, cur)
				cur = next
			}
		default:
			// anything a classifier may return beyond the known relations counts as distinct
			grouping.groups = append(grouping.groups, newReplicaGroup(append(open, cur)))
			open = nil
			cur = next
		}
	}
	grouping.groups = append(grouping.groups, newReplicaGroup(append(open, cur)))
	return grouping
}
