//go:build !functional

package drr

import (
	"testing"

	"github.com/rcrowley/go-metrics"
	assert "github.com/stretchr/testify/require"
)

// NewTestConfig returns a config meant to be used by tests, with a private metric registry
// so that metric assertions do not see other tests' traffic.
func NewTestConfig() *Config {
	config := NewConfig()
	config.ClientID = "drr-test"
	config.MetricRegistry = metrics.NewRegistry()
	return config
}

func TestDefaultConfigValidates(t *testing.T) {
	config := NewTestConfig()
	if err := config.Validate(); err != nil {
		t.Error(err)
	}
	if config.MetricRegistry == nil {
		t.Error("Expected non nil metrics.MetricRegistry, got nil")
	}
	assert.Equal(t, DoubleRoundRobinBalanceStrategyName, config.Assignor.Strategy)
	assert.Equal(t, DuplicateDropLeft, config.Assignor.DuplicatePolicy)
	assert.Equal(t, &ClientIDClassifier{Separator: "-"}, config.Assignor.Classifier)
}

func TestInvalidClientIDValidated(t *testing.T) {
	for _, clientID := range []string{"", "foo:bar", "foo|bar"} {
		config := NewTestConfig()
		config.ClientID = clientID
		err := config.Validate()
		var target ConfigurationError
		assert.ErrorAs(t, err, &target)
		assert.ErrorContains(t, err, "is not valid")
	}
}

func TestAssignorConfigValidates(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config) // resorting to using a function as a param because of internal composite structs
		err  string
	}{
		{
			"Strategy",
			func(cfg *Config) {
				cfg.Assignor.Strategy = ""
			},
			"Assignor.Strategy must not be empty",
		},
		{
			"UnregisteredStrategy",
			func(cfg *Config) {
				cfg.Assignor.Strategy = "sticky"
			},
			`Assignor.Strategy "sticky" is not registered`,
		},
		{
			"Ordering",
			func(cfg *Config) {
				cfg.Assignor.Ordering = nil
			},
			"Assignor.Ordering must not be nil",
		},
		{
			"Classifier",
			func(cfg *Config) {
				cfg.Assignor.Classifier = nil
			},
			"Assignor.Classifier must not be nil",
		},
		{
			"DuplicatePolicy",
			func(cfg *Config) {
				cfg.Assignor.DuplicatePolicy = DuplicatePolicy(42)
			},
			"Assignor.DuplicatePolicy 42 is not valid",
		},
		{
			"MetricRegistry",
			func(cfg *Config) {
				cfg.MetricRegistry = nil
			},
			"MetricRegistry must not be nil",
		},
	}

	for i, test := range tests {
		c := NewTestConfig()
		test.cfg(c)
		err := c.Validate()
		var target ConfigurationError
		assert.ErrorAs(t, err, &target, "case %d (%s)", i, test.name)
		assert.Equal(t, test.err, string(target), "case %d (%s)", i, test.name)
	}
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	config := NewTestConfig()
	config.Assignor.Ordering = nil
	config.Assignor.Classifier = nil
	config.MetricRegistry = nil

	err := config.Validate()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "3 errors occurred")
	assert.ErrorContains(t, err, "Assignor.Ordering must not be nil")
	assert.ErrorContains(t, err, "Assignor.Classifier must not be nil")
	assert.ErrorContains(t, err, "MetricRegistry must not be nil")
}

func TestParseDuplicatePolicy(t *testing.T) {
	for _, policy := range []DuplicatePolicy{DuplicateDropLeft, DuplicateDropRight, DuplicateKeepBoth} {
		parsed, err := ParseDuplicatePolicy(policy.String())
		assert.NoError(t, err)
		assert.Equal(t, policy, parsed)
	}

	parsed, err := ParseDuplicatePolicy("DROP-RIGHT")
	assert.NoError(t, err)
	assert.Equal(t, DuplicateDropRight, parsed)

	_, err = ParseDuplicatePolicy("merge")
	var target ConfigurationError
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, "DuplicatePolicy(9)", DuplicatePolicy(9).String())
}
