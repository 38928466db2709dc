package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the tunable wait bounds. The defaults were chosen
// empirically: a firewall or private endpoint typically takes a few minutes
// to surface its private address, and 600s covers that without letting a
// stuck run hang forever.
type Timeouts struct {
	PollInterval time.Duration // Delay between readiness probes
	PollMaxWait  time.Duration // Total budget for one readiness wait
	Delete       time.Duration // Budget for delete-and-recreate operations

	RetryMaxAttempts  int           // Bounded backoff attempts for locked resources
	RetryInitialDelay time.Duration // Initial backoff delay
}

// LoadTimeouts loads timeout configuration from environment variables,
// falling back to the defaults when unset or unparsable.
//
// Environment variables:
//   - HUBNET_POLL_INTERVAL (default: 15s)
//   - HUBNET_POLL_MAX_WAIT (default: 600s)
//   - HUBNET_TIMEOUT_DELETE (default: 5m)
//   - HUBNET_RETRY_MAX_ATTEMPTS (default: 5)
//   - HUBNET_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:      parseDuration("HUBNET_POLL_INTERVAL", 15*time.Second),
		PollMaxWait:       parseDuration("HUBNET_POLL_MAX_WAIT", 600*time.Second),
		Delete:            parseDuration("HUBNET_TIMEOUT_DELETE", 5*time.Minute),
		RetryMaxAttempts:  parseInt("HUBNET_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("HUBNET_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

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
