package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable wait and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	DatabaseWait      time.Duration // Total wait for a new search database to come online
	DatabaseInterval  time.Duration // Poll interval for database status checks
	AgentDeploy       time.Duration // Total wait for agent deployment visibility
	AgentInterval     time.Duration // Poll interval for agent deployment checks
	AgentSettle       time.Duration // Pause before updating a freshly created agent
	NamespaceSettle   time.Duration // Pause after namespace creation before connecting
	AttachSettle      time.Duration // Pause before attaching functions to the agent
	RetryMaxAttempts  int           // Maximum number of retry attempts for API calls
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - GRADIENT_TIMEOUT_DATABASE_WAIT (default: 10m)
//   - GRADIENT_INTERVAL_DATABASE (default: 60s)
//   - GRADIENT_TIMEOUT_AGENT_DEPLOY (default: 5m)
//   - GRADIENT_INTERVAL_AGENT (default: 15s)
//   - GRADIENT_SETTLE_AGENT (default: 10s)
//   - GRADIENT_SETTLE_NAMESPACE (default: 10s)
//   - GRADIENT_SETTLE_ATTACH (default: 5s)
//   - GRADIENT_RETRY_MAX_ATTEMPTS (default: 5)
//   - GRADIENT_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		DatabaseWait:      parseDuration("GRADIENT_TIMEOUT_DATABASE_WAIT", 10*time.Minute),
		DatabaseInterval:  parseDuration("GRADIENT_INTERVAL_DATABASE", 60*time.Second),
		AgentDeploy:       parseDuration("GRADIENT_TIMEOUT_AGENT_DEPLOY", 5*time.Minute),
		AgentInterval:     parseDuration("GRADIENT_INTERVAL_AGENT", 15*time.Second),
		AgentSettle:       parseDuration("GRADIENT_SETTLE_AGENT", 10*time.Second),
		NamespaceSettle:   parseDuration("GRADIENT_SETTLE_NAMESPACE", 10*time.Second),
		AttachSettle:      parseDuration("GRADIENT_SETTLE_ATTACH", 5*time.Second),
		RetryMaxAttempts:  parseInt("GRADIENT_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("GRADIENT_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
