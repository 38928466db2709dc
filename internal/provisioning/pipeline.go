package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes the provisioning phases sequentially. Execution is
// deliberately single-threaded: when a run fails, the last printed step is
// the one that failed. The first error halts the pipeline; nothing
// downstream executes.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting reconciliation with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Reconciliation completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
