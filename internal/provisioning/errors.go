package provisioning

import "fmt"

// PreconditionError reports a required pre-existing resource that is
// missing. Nothing has been created when it is returned: the checker runs
// before any mutating step.
type PreconditionError struct {
	Resource string
	Reason   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s: %s", e.Resource, e.Reason)
}

// ResolutionError reports that an identifier needed by a downstream step
// could not be obtained. The run halts; proceeding with an empty target
// would create a resource pointing at nothing.
type ResolutionError struct {
	Resource string
	Err      error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to resolve %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to resolve %s", e.Resource)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
