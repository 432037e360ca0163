package drr

import "sort"

// TopicPartition identifies one partition of one topic.
type TopicPartition struct {
	Topic     string
	Partition int32
}

// Assignment holds, for every member of the group, the partitions it was assigned in the
// order they were assigned. Members that received nothing are present with an empty list.
type Assignment map[string][]TopicPartition

func (a Assignment) add(memberID, topic string, partition int32) {
	a[memberID] = append(a[memberID], TopicPartition{Topic: topic, Partition: partition})
}

// Plan converts the assignment into the `memberID -> topic -> partitions` form.
// Members without partitions are left out.
func (a Assignment) Plan() BalanceStrategyPlan {
	plan := make(BalanceStrategyPlan, len(a))
	for memberID, tps := range a {
		for _, tp := range tps {
			plan.Add(memberID, tp.Topic, tp.Partition)
		}
	}
	return plan
}

// Partitions returns which member owns each partition of topic.
func (a Assignment) Partitions(topic string) map[int32]string {
	owners := make(map[int32]string)
	for memberID, tps := range a {
		for _, tp := range tps {
			if tp.Topic == topic {
				owners[tp.Partition] = memberID
			}
		}
	}
	return owners
}

// MemberAssignment builds the SyncGroup payload for one member. It returns nil for members
// that are not part of the assignment.
func (a Assignment) MemberAssignment(memberID string) *ConsumerGroupMemberAssignment {
	tps, ok := a[memberID]
	if !ok {
		return nil
	}
	topics := make(map[string][]int32)
	for _, tp := range tps {
		topics[tp.Topic] = append(topics[tp.Topic], tp.Partition)
	}
	return &ConsumerGroupMemberAssignment{Version: 0, Topics: topics}
}

// MemberIDs returns the ids of all members in the assignment, sorted.
func (a Assignment) MemberIDs() []string {
	ids := make([]string, 0, len(a))
	for memberID := range a {
		ids = append(ids, memberID)
	}
	sort.Strings(ids)
	return ids
}
