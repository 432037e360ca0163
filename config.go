package drr

import (
	"fmt"
	"regexp"

	"github.com/rcrowley/go-metrics"
)

const defaultClientID = "drr"

var validClientID = regexp.MustCompile(`\A[A-Za-z0-9._-]+\z`)

// Config is used to pass multiple configuration options to the balance strategies.
type Config struct {
	// Assignor is the namespace for the double round-robin assignor's pluggable policies.
	Assignor struct {
		// Strategy is the name of the registered balance strategy to use (default "doubleroundrobin").
		Strategy string
		// Ordering sorts each topic's eligible members before they are grouped
		// (default LexicographicOrdering).
		Ordering MemberOrdering
		// Classifier decides which adjacent members are replicas of one logical consumer
		// (default ClientIDClassifier with a "-" separator).
		Classifier ReplicaClassifier
		// DuplicatePolicy decides which member of a duplicate pair is excluded from a topic
		// (default DuplicateDropLeft).
		DuplicatePolicy DuplicatePolicy
	}

	// A user-provided string sent with every request to the brokers for logging,
	// debugging, and auditing purposes. Defaults to "drr", but you should
	// probably set it to something specific to your application.
	ClientID string

	// The registry to define metrics into.
	// Defaults to a local registry.
	// If you want to disable metrics gathering, set "metrics.UseNilMetrics" to "true"
	// prior to creating a strategy.
	// See Examples on how to use the metrics registry
	MetricRegistry metrics.Registry
}

// NewConfig returns a new configuration instance with sane defaults.
func NewConfig() *Config {
	c := &Config{}

	c.Assignor.Strategy = DoubleRoundRobinBalanceStrategyName
	c.Assignor.Ordering = LexicographicOrdering
	c.Assignor.Classifier = &ClientIDClassifier{Separator: "-"}
	c.Assignor.DuplicatePolicy = DuplicateDropLeft

	c.ClientID = defaultClientID
	c.MetricRegistry = metrics.NewRegistry()

	return c
}

// Validate checks a Config instance. It will return every
// ConfigurationError found if the specified values don't make sense.
func (c *Config) Validate() error {
	var errs []error

	if !validClientID.MatchString(c.ClientID) {
		errs = append(errs, ConfigurationError(fmt.Sprintf("ClientID value %q is not valid", c.ClientID)))
	}
	if c.Assignor.Strategy == "" {
		errs = append(errs, ConfigurationError("Assignor.Strategy must not be empty"))
	} else if _, ok := lookupBalanceStrategy(c.Assignor.Strategy); !ok {
		errs = append(errs, ConfigurationError(fmt.Sprintf("Assignor.Strategy %q is not registered", c.Assignor.Strategy)))
	}
	if c.Assignor.Ordering == nil {
		errs = append(errs, ConfigurationError("Assignor.Ordering must not be nil"))
	}
	if c.Assignor.Classifier == nil {
		errs = append(errs, ConfigurationError("Assignor.Classifier must not be nil"))
	}
	if !c.Assignor.DuplicatePolicy.valid() {
		errs = append(errs, ConfigurationError(fmt.Sprintf("Assignor.DuplicatePolicy %d is not valid", c.Assignor.DuplicatePolicy)))
	}
	if c.MetricRegistry == nil {
		errs = append(errs, ConfigurationError("MetricRegistry must not be nil"))
	}

	return multiError(errs...)
}
