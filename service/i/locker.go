package i

import "context"

// PlanLocker serializes planning requests per trajectory name, so two
// concurrent requests for the same name cannot both store and publish.
type PlanLocker interface {
	// Acquire takes the lock for the given name and returns a release
	// function. It fails when the lock is already held elsewhere.
	Acquire(ctx context.Context, name string) (release func() error, err error)
}
