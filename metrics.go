package drr

import (
	"fmt"
	"strings"

	"github.com/rcrowley/go-metrics"
)

func getOrRegisterHistogram(name string, r metrics.Registry) metrics.Histogram {
	return r.GetOrRegister(name, func() metrics.Histogram {
		return metrics.NewHistogram(metrics.NewExpDecaySample(1028, 0.015))
	}).(metrics.Histogram)
}

func getMetricNameForTopic(name string, topic string) string {
	// Convert dot to _ since reporters like Graphite typically use dot to represent hierarchy
	// cf. KAFKA-1902 and KAFKA-2337
	return fmt.Sprintf(name+"-for-topic-%s", strings.ReplaceAll(topic, ".", "_"))
}

func getOrRegisterTopicMeter(name string, topic string, r metrics.Registry) metrics.Meter {
	return metrics.GetOrRegisterMeter(getMetricNameForTopic(name, topic), r)
}

// assignorMetrics holds the metrics one strategy instance reports into.
type assignorMetrics struct {
	registry                metrics.Registry
	passes                  metrics.Meter
	errors                  metrics.Meter
	assignedPartitions      metrics.Meter
	replicaGroups           metrics.Histogram
	replicaGroupSize        metrics.Histogram
	droppedDuplicateMembers metrics.Meter
}

func newAssignorMetrics(r metrics.Registry) *assignorMetrics {
	return &assignorMetrics{
		registry:                r,
		passes:                  metrics.GetOrRegisterMeter("assignment-passes", r),
		errors:                  metrics.GetOrRegisterMeter("assignment-errors", r),
		assignedPartitions:      metrics.GetOrRegisterMeter("assigned-partitions", r),
		replicaGroups:           getOrRegisterHistogram("replica-groups", r),
		replicaGroupSize:        getOrRegisterHistogram("replica-group-size", r),
		droppedDuplicateMembers: metrics.GetOrRegisterMeter("dropped-duplicate-members", r),
	}
}

func (m *assignorMetrics) recordTopic(topic string, grouping replicaGrouping, partitions int) {
	m.replicaGroups.Update(int64(len(grouping.groups)))
	for _, group := range grouping.groups {
		m.replicaGroupSize.Update(int64(len(group.members)))
	}
	if len(grouping.dropped) > 0 {
		m.droppedDuplicateMembers.Mark(int64(len(grouping.dropped)))
	}
	m.assignedPartitions.Mark(int64(partitions))
	getOrRegisterTopicMeter("assigned-partitions", topic, m.registry).Mark(int64(partitions))
}
