package azure

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultPollInterval = 15 * time.Second
	defaultPollMaxWait  = 600 * time.Second
)

// WaitConfig bounds a readiness wait. Sleep is injectable for tests; nil
// means time.Sleep.
type WaitConfig struct {
	Interval time.Duration
	MaxWait  time.Duration
	Sleep    func(time.Duration)
}

// TimeoutError is returned when a readiness wait exhausts its budget. It
// names the resource and attribute, reports the elapsed time, and tells the
// operator where to look next.
type TimeoutError struct {
	Resource  string
	Attribute string
	Elapsed   time.Duration
	Attempts  int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf(
		"timed out waiting for %s of %s after %s (%d probes); "+
			"check the resource group activity log for a failed deployment, or inspect the resource manually with 'az network ... show'",
		e.Attribute, e.Resource, e.Elapsed, e.Attempts)
}

// WaitForAttribute polls probe until it yields a non-empty value or the wait
// budget runs out. The attribute is probed at most ceil(MaxWait/Interval)
// times. A probe error aborts the wait immediately: transport failures must
// not be mistaken for "not ready yet".
func WaitForAttribute(ctx context.Context, resource, attribute string, probe func(context.Context) (string, error), cfg WaitConfig) (string, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = defaultPollMaxWait
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	attempts := int((cfg.MaxWait + cfg.Interval - 1) / cfg.Interval)
	if attempts < 1 {
		attempts = 1
	}

	start := time.Now()
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("wait for %s of %s cancelled: %w", attribute, resource, err)
		}

		value, err := probe(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to probe %s of %s: %w", attribute, resource, err)
		}
		if value != "" {
			return value, nil
		}

		if i < attempts-1 {
			sleep(cfg.Interval)
		}
	}

	return "", &TimeoutError{
		Resource:  resource,
		Attribute: attribute,
		Elapsed:   time.Since(start),
		Attempts:  attempts,
	}
}
