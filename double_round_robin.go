package drr

import "fmt"

// NewBalanceStrategyDoubleRoundRobin returns the double round-robin balance strategy.
// A nil conf means NewConfig(); invalid policies in conf are replaced by their defaults.
//
// For every topic the members subscribed to it are sorted with conf.Assignor.Ordering and cut
// into replica groups: maximal runs of neighbours that conf.Assignor.Classifier reports as
// replicas. Partitions are then dealt out in ascending order, rotating across groups and,
// inside the selected group, across its members. Rotation starts over for every topic.
//
// Example with topic T with four partitions (0..3), replicas A-1 and A-2 of consumer A and a
// single member B-1 of consumer B:
//
//	A-1: {T: [0]}
//	A-2: {T: [2]}
//	B-1: {T: [1, 3]}
//
// When no two members are replicas this degenerates to a round robin over the sorted members
// of each topic.
func NewBalanceStrategyDoubleRoundRobin(conf *Config) BalanceStrategy {
	return newDoubleRoundRobinBalancer(conf)
}

// DoubleRoundRobinBalancer is the double round-robin BalanceStrategy. Besides Plan it exposes
// Assign, which keeps the order in which each member received its partitions.
type DoubleRoundRobinBalancer struct {
	ordering        MemberOrdering
	classifier      ReplicaClassifier
	duplicatePolicy DuplicatePolicy
	metrics         *assignorMetrics
}

func newDoubleRoundRobinBalancer(conf *Config) *DoubleRoundRobinBalancer {
	defaults := NewConfig()
	if conf == nil {
		conf = defaults
	}

	b := &DoubleRoundRobinBalancer{
		ordering:        conf.Assignor.Ordering,
		classifier:      conf.Assignor.Classifier,
		duplicatePolicy: conf.Assignor.DuplicatePolicy,
	}
	if b.ordering == nil {
		b.ordering = defaults.Assignor.Ordering
	}
	if b.classifier == nil {
		b.classifier = defaults.Assignor.Classifier
	}
	if !b.duplicatePolicy.valid() {
		Logger.Printf("doubleroundrobin: unknown duplicate policy %v, using %v\n", b.duplicatePolicy, defaults.Assignor.DuplicatePolicy)
		b.duplicatePolicy = defaults.Assignor.DuplicatePolicy
	}
	registry := conf.MetricRegistry
	if registry == nil {
		registry = defaults.MetricRegistry
	}
	b.metrics = newAssignorMetrics(registry)
	return b
}

// Name implements BalanceStrategy.
func (b *DoubleRoundRobinBalancer) Name() string { return DoubleRoundRobinBalanceStrategyName }

// Protocol implements BalanceStrategy. Plans are computed from scratch, so every member has
// to give up its partitions first.
func (b *DoubleRoundRobinBalancer) Protocol() RebalanceProtocol { return RebalanceProtocolEager }

// Plan implements BalanceStrategy.
func (b *DoubleRoundRobinBalancer) Plan(members map[string]ConsumerGroupMemberMetadata, topics map[string][]int32) (BalanceStrategyPlan, error) {
	assignment, err := b.Assign(members, topics)
	if err != nil {
		return nil, err
	}
	return assignment.Plan(), nil
}

// AssignmentData implements BalanceStrategy. The strategy keeps no state between rebalances,
// so there is nothing to share.
func (b *DoubleRoundRobinBalancer) AssignmentData(memberID string, topics map[string][]int32, generationID int32) ([]byte, error) {
	return nil, nil
}

// Assign computes the assignment of every partition of every topic some member subscribes to.
// topics maps topic names to their partition ids. If the metadata of any subscribed topic is
// missing or malformed, Assign returns an error wrapping ErrInvalidMetadata and no assignment.
func (b *DoubleRoundRobinBalancer) Assign(members map[string]ConsumerGroupMemberMetadata, topics map[string][]int32) (Assignment, error) {
	mbt := membersByTopic(members)
	eligible := sortedTopics(mbt)

	if err := validateTopicMetadata(eligible, topics); err != nil {
		b.metrics.errors.Mark(1)
		Logger.Printf("doubleroundrobin: rejecting plan: %v\n", err)
		return nil, err
	}

	assignment := make(Assignment, len(members))
	for memberID := range members {
		assignment[memberID] = []TopicPartition{}
	}

	for _, topic := range eligible {
		b.assignTopic(assignment, topic, mbt[topic], sortedPartitions(topics[topic]))
	}

	b.metrics.passes.Mark(1)
	return assignment, nil
}

// assignTopic runs grouping and distribution for a single topic. Groups and rotation cursors
// live only for the duration of this call.
func (b *DoubleRoundRobinBalancer) assignTopic(assignment Assignment, topic string, memberIDs []string, partitions []int32) {
	ordered := make([]string, len(memberIDs))
	copy(ordered, memberIDs)
	sortMemberIDs(ordered, b.ordering)

	grouping := groupReplicas(ordered, b.classifier, b.duplicatePolicy)
	for _, memberID := range grouping.dropped {
		Logger.Printf("doubleroundrobin: member %q is a duplicate, dropped from topic %s (policy %v)\n", memberID, topic, b.duplicatePolicy)
	}

	distribute(grouping.groups, partitions, func(memberID string, partition int32) {
		DebugLogger.Printf("doubleroundrobin: member %q: assigned topic %s partition %d\n", memberID, topic, partition)
		assignment.add(memberID, topic, partition)
	})

	b.metrics.recordTopic(topic, grouping, len(partitions))
}

// validateTopicMetadata checks every eligible topic and reports all problems at once.
func validateTopicMetadata(eligible []string, topics map[string][]int32) error {
	var errs []error
	for _, topic := range eligible {
		partitions, ok := topics[topic]
		if !ok {
			errs = append(errs, MetadataError{Topic: topic, Reason: "no partition metadata"})
			continue
		}
		seen := make(map[int32]bool, len(partitions))
		for _, partition := range partitions {
			switch {
			case partition < 0:
				errs = append(errs, MetadataError{Topic: topic, Reason: fmt.Sprintf("negative partition id %d", partition)})
			case seen[partition]:
				errs = append(errs, MetadataError{Topic: topic, Reason: fmt.Sprintf("partition %d listed twice", partition)})
			}
			seen[partition] = true
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return Wrap(ErrInvalidMetadata, errs...)
}
