package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/Shopify/drr"
)

var (
	members = flag.String(
		"members",
		"",
		"REQUIRED: The group members and their subscriptions, e.g. \"A-1=t0,t1;A-2=t0;B-1=t0\".",
	)
	topics = flag.String(
		"topics",
		"",
		"REQUIRED: The partition count of every topic, e.g. \"t0=4,t1=3\".",
	)
	strategy = flag.String(
		"strategy",
		drr.DoubleRoundRobinBalanceStrategyName,
		fmt.Sprintf("The balance strategy to plan with (%s).", strings.Join(drr.BalanceStrategyNames(), ", ")),
	)
	duplicatePolicy = flag.String(
		"duplicate-policy",
		drr.DuplicateDropLeft.String(),
		"Which member of a duplicate pair loses the topic (drop-left, drop-right, keep-both).",
	)
	separator = flag.String(
		"separator",
		"-",
		"The separator between the consumer and the replica part of a member id.",
	)
	encodeAssignments = flag.Bool(
		"encode",
		false,
		"Print the hex encoded SyncGroup assignment of every member.",
	)
	printMetrics = flag.Bool(
		"metrics",
		false,
		"Print the metrics collected while planning.",
	)
	verbose = flag.Bool(
		"verbose",
		false,
		"Log every assignment decision to stderr.",
	)
)

// parseMembers parses "member=topic,topic;member=topic".
func parseMembers(s string) (map[string]drr.ConsumerGroupMemberMetadata, error) {
	result := make(map[string]drr.ConsumerGroupMemberMetadata)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		memberID := strings.TrimSpace(parts[0])
		if memberID == "" {
			return nil, fmt.Errorf("member entry %q has no member id", entry)
		}
		if _, ok := result[memberID]; ok {
			return nil, fmt.Errorf("member %q listed twice", memberID)
		}
		var subscriptions []string
		if len(parts) == 2 {
			for _, topic := range strings.Split(parts[1], ",") {
				if topic = strings.TrimSpace(topic); topic != "" {
					subscriptions = append(subscriptions, topic)
				}
			}
		}
		result[memberID] = drr.ConsumerGroupMemberMetadata{Topics: subscriptions}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no members in %q", s)
	}
	return result, nil
}

// parseTopics parses "topic=partitions,topic=partitions" into partition id lists 0..n-1.
func parseTopics(s string) (map[string][]int32, error) {
	result := make(map[string][]int32)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("topic entry %q is not of the form topic=partitions", entry)
		}
		count, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("topic entry %q has an invalid partition count", entry)
		}
		partitions := make([]int32, count)
		for i := range partitions {
			partitions[i] = int32(i)
		}
		result[strings.TrimSpace(parts[0])] = partitions
	}
	return result, nil
}

func main() {
	flag.Parse()

	if *members == "" {
		printUsageErrorAndExit("-members is required")
	}
	if *topics == "" {
		printUsageErrorAndExit("-topics is required")
	}

	memberMetadata, err := parseMembers(*members)
	if err != nil {
		printUsageErrorAndExit(err.Error())
	}
	topicPartitions, err := parseTopics(*topics)
	if err != nil {
		printUsageErrorAndExit(err.Error())
	}
	policy, err := drr.ParseDuplicatePolicy(*duplicatePolicy)
	if err != nil {
		printUsageErrorAndExit(err.Error())
	}

	if *verbose {
		drr.Logger = log.New(os.Stderr, "[drr] ", log.LstdFlags)
		drr.DebugLogger = log.New(os.Stderr, "[drr] [debug] ", log.LstdFlags)
	}

	config := drr.NewConfig()
	config.Assignor.Strategy = *strategy
	config.Assignor.DuplicatePolicy = policy
	config.Assignor.Classifier = &drr.ClientIDClassifier{Separator: *separator}

	if err := config.Validate(); err != nil {
		printErrorAndExit(69, "Invalid configuration: %s", err)
	}

	balancer, err := drr.NewBalanceStrategy(config.Assignor.Strategy, config)
	if err != nil {
		printErrorAndExit(69, "Failed to create strategy: %s", err)
	}

	plan, err := balancer.Plan(memberMetadata, topicPartitions)
	if err != nil {
		printErrorAndExit(69, "Failed to plan: %s", err)
	}

	memberIDs := make([]string, 0, len(memberMetadata))
	for memberID := range memberMetadata {
		memberIDs = append(memberIDs, memberID)
	}
	sort.Strings(memberIDs)

	for _, memberID := range memberIDs {
		fmt.Printf("%s: %s\n", memberID, formatTopics(plan[memberID]))
		if *encodeAssignments {
			assignment := &drr.ConsumerGroupMemberAssignment{Topics: plan[memberID]}
			buf, err := assignment.Encode()
			if err != nil {
				printErrorAndExit(69, "Failed to encode assignment of %s: %s", memberID, err)
			}
			fmt.Printf("  %s\n", hex.EncodeToString(buf))
		}
	}

	if *printMetrics {
		metrics.WriteOnce(config.MetricRegistry, os.Stdout)
	}
}

func formatTopics(topics map[string][]int32) string {
	names := make([]string, 0, len(topics))
	for topic := range topics {
		names = append(names, topic)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, topic := range names {
		parts = append(parts, fmt.Sprintf("%s%v", topic, topics[topic]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func printUsageErrorAndExit(message string) {
	fmt.Fprintln(os.Stderr, "ERROR:", message)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Available command line options:")
	flag.PrintDefaults()
	os.Exit(64)
}

func printErrorAndExit(code int, format string, values ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", fmt.Sprintf(format, values...))
	fmt.Fprintln(os.Stderr)
	os.Exit(code)
}
