/*
Package drr provides consumer group balance strategies for Kafka clients, chief among them
the double round-robin strategy.

The double round-robin strategy treats members whose ids mark them as replicas of the same
logical consumer as one group. Partitions of each topic are dealt out round robin across
groups first, and then round robin across the members of the selected group, so that
distinct consumers get balanced shares and replicas split their consumer's share evenly.

	strategy := drr.NewBalanceStrategyDoubleRoundRobin(drr.NewConfig())
	plan, err := strategy.Plan(members, topics)

Strategies are registered by name and can be built with NewBalanceStrategy. The range and
roundrobin strategies are registered too.

Metrics are exposed through the https://github.com/rcrowley/go-metrics library in a local
registry, see Config.MetricRegistry. Available metrics:

	+-------------------------------------------+------------+--------------------------------------+
	| Name                                      | Type       | Description                          |
	+-------------------------------------------+------------+--------------------------------------+
	| assignment-passes                         | meter      | Plans computed                       |
	| assignment-errors                         | meter      | Plans rejected for invalid metadata  |
	| assigned-partitions                       | meter      | Partitions assigned for all topics   |
	| assigned-partitions-for-topic-<topic>     | meter      | Partitions assigned for a topic      |
	| replica-groups                            | histogram  | Replica groups formed per topic      |
	| replica-group-size                        | histogram  | Members per replica group            |
	| dropped-duplicate-members                 | meter      | Members dropped as duplicates        |
	+-------------------------------------------+------------+--------------------------------------+
*/
package drr

import (
	"io"
	"log"
)

// Logger is the instance of a StdLogger interface that drr writes notable events to.
// By default it discards everything; set it to a real logger to see what happened, e.g.
//
//	drr.Logger = log.New(os.Stderr, "[drr] ", log.LstdFlags)
var Logger StdLogger = log.New(io.Discard, "[drr] ", log.LstdFlags)

// DebugLogger receives a line for every partition handed out. It is very noisy on large
// groups and discards by default.
var DebugLogger StdLogger = log.New(io.Discard, "[drr] [debug] ", log.LstdFlags)

// StdLogger is used to log error messages.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
