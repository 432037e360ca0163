package mocks

import (
	"sync"

	"github.com/Shopify/drr"
)

type classifyExpectation struct {
	a, b     string
	relation drr.ReplicaRelation
}

// ClassifyExpectation is returned by ExpectClassify and sets what the expected call returns.
type ClassifyExpectation struct {
	exp *classifyExpectation
}

// Return sets the relation reported for the expected pair.
func (e *ClassifyExpectation) Return(relation drr.ReplicaRelation) {
	e.exp.relation = relation
}

// ReplicaClassifier implements drr's ReplicaClassifier interface for testing purposes.
// Every Classify call has to be announced with ExpectClassify, in the order the calls will
// be made. Calls without a matching expectation are reported and answered with
// drr.ReplicaDistinct.
type ReplicaClassifier struct {
	l            sync.Mutex
	t            ErrorReporter
	expectations []*classifyExpectation
	lastErr      error
}

// NewReplicaClassifier returns a new mock ReplicaClassifier instance. The t argument should
// be the *testing.T instance of your test method. An error will be written to it if
// an expectation is violated.
func NewReplicaClassifier(t ErrorReporter) *ReplicaClassifier {
	return &ReplicaClassifier{t: t}
}

// Classify implements drr.ReplicaClassifier.
func (rc *ReplicaClassifier) Classify(a, b string) drr.ReplicaRelation {
	rc.l.Lock()
	defer rc.l.Unlock()

	if len(rc.expectations) == 0 {
		rc.t.Errorf("No more expectations set on the mock classifier, got Classify(%q, %q)", a, b)
		rc.lastErr = errOutOfExpectations
		return drr.ReplicaDistinct
	}

	exp := rc.expectations[0]
	rc.expectations = rc.expectations[1:]
	if exp.a != a || exp.b != b {
		rc.t.Errorf("Unexpected call Classify(%q, %q), expected Classify(%q, %q)", a, b, exp.a, exp.b)
	}
	return exp.relation
}

// ExpectClassify announces that Classify will be called with a and b next. The relation
// defaults to drr.ReplicaDistinct until set with Return.
func (rc *ReplicaClassifier) ExpectClassify(a, b string) *ClassifyExpectation {
	rc.l.Lock()
	defer rc.l.Unlock()

	exp := &classifyExpectation{a: a, b: b, relation: drr.ReplicaDistinct}
	rc.expectations = append(rc.expectations, exp)
	return &ClassifyExpectation{exp: exp}
}

// ExpectationsWereMet reports an error to the ErrorReporter if expectations are left, and
// returns errOutOfExpectations if the classifier was called more often than expected.
func (rc *ReplicaClassifier) ExpectationsWereMet() error {
	rc.l.Lock()
	defer rc.l.Unlock()

	if len(rc.expectations) > 0 {
		rc.t.Errorf("Expected to exhaust all expectations, but %d are left.", len(rc.expectations))
	}
	return rc.lastErr
}
