package drr

import (
	"strings"

	uuid "github.com/hashicorp/go-uuid"
)

// ReplicaRelation is the relationship between two members that are adjacent in member order.
type ReplicaRelation int8

const (
	// ReplicaDistinct means the members belong to different logical consumers.
	ReplicaDistinct ReplicaRelation = iota
	// ReplicaSameGroup means the members are replicas of one logical consumer.
	ReplicaSameGroup
	// ReplicaDuplicate means the members stand for the same replica of one logical consumer.
	// One of them is excluded according to the configured DuplicatePolicy.
	ReplicaDuplicate
)

func (r ReplicaRelation) String() string {
	switch r {
	case ReplicaDistinct:
		return "distinct"
	case ReplicaSameGroup:
		return "same-group"
	case ReplicaDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// ReplicaClassifier decides whether two members adjacent in member order are replicas.
//
// Grouping only ever compares neighbours, so all replicas of one logical consumer have to
// sort into one contiguous run under the configured MemberOrdering. Classify must be free
// of side effects.
type ReplicaClassifier interface {
	Classify(a, b string) ReplicaRelation
}

// ReplicaClassifierFunc adapts a plain function to ReplicaClassifier.
type ReplicaClassifierFunc func(a, b string) ReplicaRelation

// Classify implements ReplicaClassifier.
func (f ReplicaClassifierFunc) Classify(a, b string) ReplicaRelation { return f(a, b) }

// ClientIDClassifier reads member ids as "<consumer><Separator><replica>", optionally followed by
// the "-<uuid>" suffix the group coordinator appends to a client id. Members with different
// consumer parts are distinct. Members with the same consumer part are replicas, unless they
// carry the same non-empty replica tag, in which case they are duplicates.
//
// With the default "-" separator, "billing-1" and "billing-2" are replicas of "billing",
// while "billing-1-<uuid a>" and "billing-1-<uuid b>" are duplicates of the same replica.
type ClientIDClassifier struct {
	Separator string
}

// Classify implements ReplicaClassifier.
func (c *ClientIDClassifier) Classify(a, b string) ReplicaRelation {
	consumerA, replicaA := SplitMemberID(a, c.Separator)
	consumerB, replicaB := SplitMemberID(b, c.Separator)

	switch {
	case consumerA != consumerB:
		return ReplicaDistinct
	case replicaA != "" && replicaA == replicaB:
		return ReplicaDuplicate
	default:
		return ReplicaSameGroup
	}
}

const uuidLength = 36

// SplitMemberID splits a member id into its logical consumer and replica parts. A trailing
// "-<uuid>" is ignored. Without a separator the whole id is the consumer and the replica is empty.
func SplitMemberID(memberID, separator string) (consumer, replica string) {
	id := trimMemberUUID(memberID)
	if separator == "" {
		return id, ""
	}
	idx := strings.LastIndex(id, separator)
	if idx <= 0 {
		return id, ""
	}
	return id[:idx], id[idx+len(separator):]
}

func trimMemberUUID(memberID string) string {
	cut := len(memberID) - uuidLength - 1
	if cut <= 0 || memberID[cut] != '-' {
		return memberID
	}
	if _, err := uuid.ParseUUID(memberID[cut+1:]); err != nil {
		return memberID
	}
	return memberID[:cut]
}
