package drr

import (
	"fmt"
	"sort"
	"sync"
)

const (
	// RangeBalanceStrategyName identifies strategies that use the range partition assignment strategy
	RangeBalanceStrategyName = "range"

	// RoundRobinBalanceStrategyName identifies strategies that use the round-robin partition assignment strategy
	RoundRobinBalanceStrategyName = "roundrobin"

	// DoubleRoundRobinBalanceStrategyName identifies strategies that use the double round-robin partition assignment strategy
	DoubleRoundRobinBalanceStrategyName = "doubleroundrobin"
)

// RebalanceProtocol is the rebalance protocol a strategy's plans are designed for.
type RebalanceProtocol int8

const (
	// RebalanceProtocolEager revokes every partition from every member before a fresh plan is handed out.
	RebalanceProtocolEager RebalanceProtocol = iota
	// RebalanceProtocolCooperative only revokes partitions that actually move.
	RebalanceProtocolCooperative
)

func (p RebalanceProtocol) String() string {
	switch p {
	case RebalanceProtocolEager:
		return "eager"
	case RebalanceProtocolCooperative:
		return "cooperative"
	}
	return fmt.Sprintf("RebalanceProtocol(%d)", int8(p))
}

// BalanceStrategyPlan is the results of any BalanceStrategy.Plan attempt.
// It contains an allocation of topic/partitions by memberID in the form of
// a `memberID -> topic -> partitions` map.
type BalanceStrategyPlan map[string]map[string][]int32

// Add assigns a topic with a number partitions to a member.
func (p BalanceStrategyPlan) Add(memberID, topic string, partitions ...int32) {
	if len(partitions) == 0 {
		return
	}
	if _, ok := p[memberID]; !ok {
		p[memberID] = make(map[string][]int32, 1)
	}
	p[memberID][topic] = append(p[memberID][topic], partitions...)
}

// --------------------------------------------------------------------

// BalanceStrategy is used to balance topics and partitions
// across members of a consumer group
type BalanceStrategy interface {
	// Name uniquely identifies the strategy.
	Name() string

	// Protocol is the rebalance protocol the strategy's plans assume.
	Protocol() RebalanceProtocol

	// Plan accepts a map of `memberID -> metadata` and a map of `topic -> partitions`
	// and returns a distribution plan.
	Plan(members map[string]ConsumerGroupMemberMetadata, topics map[string][]int32) (BalanceStrategyPlan, error)

	// AssignmentData returns the serialized assignment data for the specified
	// memberID
	AssignmentData(memberID string, topics map[string][]int32, generationID int32) ([]byte, error)
}

// BalanceStrategyConstructor builds a strategy from a configuration.
type BalanceStrategyConstructor func(conf *Config) BalanceStrategy

var (
	balanceStrategiesLock sync.RWMutex
	balanceStrategies     = make(map[string]BalanceStrategyConstructor)
)

func init() {
	mustRegisterBalanceStrategy(RangeBalanceStrategyName, func(*Config) BalanceStrategy { return NewBalanceStrategyRange() })
	mustRegisterBalanceStrategy(RoundRobinBalanceStrategyName, func(*Config) BalanceStrategy { return NewBalanceStrategyRoundRobin() })
	mustRegisterBalanceStrategy(DoubleRoundRobinBalanceStrategyName, func(conf *Config) BalanceStrategy {
		return NewBalanceStrategyDoubleRoundRobin(conf)
	})
}

// RegisterBalanceStrategy makes a strategy available under name to NewBalanceStrategy.
// Registering a name twice returns ErrBalanceStrategyRegistered.
func RegisterBalanceStrategy(name string, fn BalanceStrategyConstructor) error {
	if name == "" || fn == nil {
		return ConfigurationError("a balance strategy needs a name and a constructor")
	}

	balanceStrategiesLock.Lock()
	defer balanceStrategiesLock.Unlock()

	if _, ok := balanceStrategies[name]; ok {
		return Wrap(ErrBalanceStrategyRegistered, fmt.Errorf("name %q", name))
	}
	balanceStrategies[name] = fn
	return nil
}

func mustRegisterBalanceStrategy(name string, fn BalanceStrategyConstructor) {
	if err := RegisterBalanceStrategy(name, fn); err != nil {
		panic(err)
	}
}

// NewBalanceStrategy builds the strategy registered under name. A nil conf means NewConfig().
func NewBalanceStrategy(name string, conf *Config) (BalanceStrategy, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	fn, ok := lookupBalanceStrategy(name)
	if !ok {
		return nil, Wrap(ErrUnknownBalanceStrategy, fmt.Errorf("name %q", name))
	}
	return fn(conf), nil
}

// BalanceStrategyNames returns the names of all registered strategies, sorted.
func BalanceStrategyNames() []string {
	balanceStrategiesLock.RLock()
	defer balanceStrategiesLock.RUnlock()

	names := make([]string, 0, len(balanceStrategies))
	for name := range balanceStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupBalanceStrategy(name string) (BalanceStrategyConstructor, bool) {
	balanceStrategiesLock.RLock()
	defer balanceStrategiesLock.RUnlock()

	fn, ok := balanceStrategies[name]
	return fn, ok
}

// --------------------------------------------------------------------

// NewBalanceStrategyRange returns a range balance strategy,
// which is the default and assigns partitions as ranges to consumer group members.
// This follows the same logic as
// https://kafka.apache.org/31/javadoc/org/apache/kafka/clients/consumer/RangeAssignor.html
//
// Example with two topics T1 and T2 with six partitions each (0..5) and two members (M1, M2):
//
//	M1: {T1: [0, 1, 2], T2: [0, 1, 2]}
//	M2: {T1: [3, 4, 5], T2: [3, 4, 5]}
func NewBalanceStrategyRange() BalanceStrategy {
	return &balanceStrategy{
		name: RangeBalanceStrategyName,
		coreFn: func(plan BalanceStrategyPlan, memberIDs []string, topic string, partitions []int32) {
			partitionsPerConsumer := len(partitions) / len(memberIDs)
			consumersWithExtraPartition := len(partitions) % len(memberIDs)

			for i, memberID := range memberIDs {
				min := i*partitionsPerConsumer + minInt(consumersWithExtraPartition, i)
				extra := 0
				if i < consumersWithExtraPartition {
					extra = 1
				}
				max := min + partitionsPerConsumer + extra
				plan.Add(memberID, topic, partitions[min:max]...)
			}
		},
	}
}

type balanceStrategy struct {
	name   string
	coreFn func(plan BalanceStrategyPlan, memberIDs []string, topic string, partitions []int32)
}

// Name implements BalanceStrategy.
func (s *balanceStrategy) Name() string { return s.name }

// Protocol implements BalanceStrategy.
func (s *balanceStrategy) Protocol() RebalanceProtocol { return RebalanceProtocolEager }

// Plan implements BalanceStrategy.
func (s *balanceStrategy) Plan(members map[string]ConsumerGroupMemberMetadata, topics map[string][]int32) (BalanceStrategyPlan, error) {
	mbt := membersByTopic(members)

	plan := make(BalanceStrategyPlan, len(members))
	for topic, memberIDs := range mbt {
		partitions, ok := topics[topic]
		if !ok {
			continue
		}
		sortMemberIDs(memberIDs, LexicographicOrdering)
		s.coreFn(plan, memberIDs, topic, sortedPartitions(partitions))
	}
	return plan, nil
}

// AssignmentData simple strategies do not require any shared assignment data
func (s *balanceStrategy) AssignmentData(memberID string, topics map[string][]int32, generationID int32) ([]byte, error) {
	return nil, nil
}

// --------------------------------------------------------------------

// NewBalanceStrategyRoundRobin returns a round-robin balance strategy,
// which assigns partitions to members in alternating order.
// It lays out every partition of every subscribed topic, sorted by topic and partition, and
// deals them out over the lexicographically sorted members, skipping members that are not
// subscribed to the partition's topic. The rotation carries over from one topic to the next.
//
// For example, suppose there are two consumers C0 and C1, two topics t0 and
// t1, and each topic has 3 partitions, resulting in partitions t0p0, t0p1,
// t0p2, t1p0, t1p1, and t1p2. The assignment will be:
//
//	C0: [t0p0, t0p2, t1p1]
//	C1: [t0p1, t1p0, t1p2]
func NewBalanceStrategyRoundRobin() BalanceStrategy {
	return new(roundRobinBalancer)
}

type roundRobinBalancer struct{}

func (b *roundRobinBalancer) Name() string { return RoundRobinBalanceStrategyName }

func (b *roundRobinBalancer) Protocol() RebalanceProtocol { return RebalanceProtocolEager }

func (b *roundRobinBalancer) Plan(memberAndMetadata map[string]ConsumerGroupMemberMetadata, topics map[string][]int32) (BalanceStrategyPlan, error) {
	if len(memberAndMetadata) == 0 || len(topics) == 0 {
		return nil, ConfigurationError("members and topics are not provided")
	}

	mbt := membersByTopic(memberAndMetadata)
	subscribed := make(map[string]map[string]bool, len(memberAndMetadata))
	for topic, memberIDs := range mbt {
		for _, memberID := range memberIDs {
			if subscribed[memberID] == nil {
				subscribed[memberID] = make(map[string]bool)
			}
			subscribed[memberID][topic] = true
		}
	}

	memberIDs := make([]string, 0, len(memberAndMetadata))
	for memberID := range memberAndMetadata {
		memberIDs = append(memberIDs, memberID)
	}
	sortMemberIDs(memberIDs, LexicographicOrdering)

	var topicPartitions []TopicPartition
	for _, topic := range sortedTopics(mbt) {
		partitions, ok := topics[topic]
		if !ok {
			continue
		}
		for _, partition := range sortedPartitions(partitions) {
			topicPartitions = append(topicPartitions, TopicPartition{Topic: topic, Partition: partition})
		}
	}

	plan := make(BalanceStrategyPlan, len(memberIDs))
	i := 0
	for _, tp := range topicPartitions {
		// terminates because every laid out topic has at least one subscriber
		for !subscribed[memberIDs[i]][tp.Topic] {
			i = nextIndex(i, len(memberIDs))
		}
		plan.Add(memberIDs[i], tp.Topic, tp.Partition)
		i = nextIndex(i, len(memberIDs))
	}
	return plan, nil
}

func (b *roundRobinBalancer) AssignmentData(memberID string, topics map[string][]int32, generationID int32) ([]byte, error) {
	return nil, nil // do nothing for now
}

// --------------------------------------------------------------------

// membersByTopic inverts member subscriptions. Every member appears at most once per topic
// even if its metadata lists the topic repeatedly.
func membersByTopic(members map[string]ConsumerGroupMemberMetadata) map[string][]string {
	mbt := make(map[string][]string)
	for memberID, meta := range members {
		seen := make(map[string]bool, len(meta.Topics))
		for _, topic := range meta.Topics {
			if seen[topic] {
				continue
			}
			seen[topic] = true
			mbt[topic] = append(mbt[topic], memberID)
		}
	}
	return mbt
}

func sortedTopics(mbt map[string][]string) []string {
	topics := make([]string, 0, len(mbt))
	for topic := range mbt {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// sortedPartitions returns a sorted copy so that callers' metadata is never reordered.
func sortedPartitions(partitions []int32) []int32 {
	sorted := make([]int32, len(partitions))
	copy(sorted, partitions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
