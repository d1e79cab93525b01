package shared

import "context"

// Locker serialises mutations on a single aggregate.
// Lock blocks until the key is held or ctx is done; the returned func releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// NoopLocker never blocks. Useful for tests and single-writer setups.
type NoopLocker struct{}

// Lock returns immediately
func (NoopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
