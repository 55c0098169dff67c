// Package lock provides keyed exclusive sections used to serialize
// invoice number allocation per program.
package lock

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// context expired.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Locker grants exclusive access per key. The returned release function
// must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
