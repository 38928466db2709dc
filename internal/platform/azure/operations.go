package azure

import (
	"context"
	"fmt"
)

// Policy selects how an EnsureOperation treats an already-existing resource.
// The policy is fixed per resource type, not user-configurable: a route's
// next-hop is cheap and safe to rewrite, a DNS zone group must be replaced
// wholesale so stale bindings cannot accumulate, and most resources are
// simply left alone once they exist.
type Policy int

const (
	// CreateIfAbsent leaves an existing resource untouched regardless of drift.
	CreateIfAbsent Policy = iota

	// CreateOrUpdate applies the update call when the resource exists.
	CreateOrUpdate

	// CreateOrReplace deletes an existing resource and recreates it from the
	// canonical desired state.
	CreateOrReplace
)

// EnsureOperation encapsulates the idempotent upsert for one resource.
//
// Get reports (value, exists, transport error); Execute performs at most one
// create, one update, or one delete+create sequence per call and never
// retries. The underlying API error is surfaced to the caller, wrapped with
// the resource type and name.
type EnsureOperation[T any] struct {
	Name         string
	ResourceType string
	Policy       Policy

	Get    func(ctx context.Context) (T, bool, error)
	Create func(ctx context.Context) (T, error)

	// Update is required for CreateOrUpdate.
	Update func(ctx context.Context, existing T) (T, error)

	// Delete is required for CreateOrReplace.
	Delete func(ctx context.Context, existing T) error
}

// Execute runs the operation under its policy.
func (op *EnsureOperation[T]) Execute(ctx context.Context) (T, error) {
	var zero T

	existing, exists, err := op.Get(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to get %s %s: %w", op.ResourceType, op.Name, err)
	}

	if exists {
		switch op.Policy {
		case CreateIfAbsent:
			return existing, nil

		case CreateOrUpdate:
			if op.Update == nil {
				return existing, nil
			}
			updated, err := op.Update(ctx, existing)
			if err != nil {
				return zero, fmt.Errorf("failed to update %s %s: %w", op.ResourceType, op.Name, err)
			}
			return updated, nil

		case CreateOrReplace:
			if err := op.Delete(ctx, existing); err != nil {
				return zero, fmt.Errorf("failed to delete %s %s for replacement: %w", op.ResourceType, op.Name, err)
			}
		}
	}

	created, err := op.Create(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s %s: %w", op.ResourceType, op.Name, err)
	}
	return created, nil
}
