// Package locker coordinates background jobs across service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker grants a named lock to at most one holder at a time.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "sync:feeds:lock", 15*time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    return nil // another holder is running the job
//	}
//	defer locker.Release(ctx, "sync:feeds:lock")
type DistributedLocker interface {
	// Acquire tries once to take the lock. It returns false, nil when another
	// holder owns it. The lock expires after ttl if never released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release drops the lock if this holder owns it. Releasing a lock held
	// elsewhere, or one that already expired, is a no-op.
	Release(ctx context.Context, key string) error
}
