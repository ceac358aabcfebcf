// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"context"

	"code.hybscloud.com/atomix"
	"golang.org/x/sync/semaphore"
)

// asyncUnits is the total weight of the suspending backend's semaphore.
// A shared acquisition takes 1 unit, an exclusive acquisition takes all
// of them, giving reader-writer semantics without this package adding
// any queueing or fairness of its own.
const asyncUnits = 1 << 30

// asyncCell is the shared allocation behind the suspending backend:
// the value, the weighted semaphore guarding it, and the strong count.
type asyncCell[T any] struct {
	value  T
	sem    *semaphore.Weighted
	strong atomix.Uint32
	serial Serial
}

// Async is a strong handle on shared data guarded by a suspending lock.
// Acquisition never fails on contention: it suspends the caller until
// access is granted, or returns the context's error when the in-flight
// acquisition is abandoned. Cancellation safety is the semaphore's own;
// this package adds no cancellation logic.
//
// Async has no synchronous accessors. Code generic over both worlds
// wraps the handle in [Any], whose synchronous accessors on an async
// cell deterministically return UnsupportedMode.
type Async[T any] struct {
	cell *asyncCell[T]
}

// NewAsync creates an Async holding value, with strong count 1.
// Always succeeds.
func NewAsync[T any](value T) Async[T] {
	c := &asyncCell[T]{value: value, sem: semaphore.NewWeighted(asyncUnits), serial: nextSerial()}
	c.strong.Add(1)
	return Async[T]{cell: c}
}

// ReadAsync acquires shared access, suspending while a conflicting
// exclusive access is outstanding. The only error is ctx.Err() when the
// acquisition is abandoned before being granted.
func (c Async[T]) ReadAsync(ctx context.Context) (*AsyncReadGuard[T], error) {
	if err := c.cell.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return &AsyncReadGuard[T]{cell: c.cell}, nil
}

// WriteAsync acquires exclusive access, suspending while any access is
// outstanding. The only error is ctx.Err() when the acquisition is
// abandoned before being granted.
func (c Async[T]) WriteAsync(ctx context.Context) (*AsyncWriteGuard[T], error) {
	if err := c.cell.sem.Acquire(ctx, asyncUnits); err != nil {
		return nil, err
	}
	return &AsyncWriteGuard[T]{cell: c.cell}, nil
}

// TryRead attempts shared access without suspending. Reports false while
// a conflicting exclusive access is outstanding. This is the dispatch
// primitive of the cooperative world ([AcquireRead]).
func (c Async[T]) TryRead() (*AsyncReadGuard[T], bool) {
	if !c.cell.sem.TryAcquire(1) {
		return nil, false
	}
	return &AsyncReadGuard[T]{cell: c.cell}, true
}

// TryWrite attempts exclusive access without suspending. Reports false
// while any access is outstanding.
func (c Async[T]) TryWrite() (*AsyncWriteGuard[T], bool) {
	if !c.cell.sem.TryAcquire(asyncUnits) {
		return nil, false
	}
	return &AsyncWriteGuard[T]{cell: c.cell}, true
}

// LoadAsync acquires shared access, copies the contained value,
// releases, and returns the copy. Fails exactly when ReadAsync would.
func (c Async[T]) LoadAsync(ctx context.Context) (T, error) {
	g, err := c.ReadAsync(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	v := *g.Value()
	g.Release()
	return v, nil
}

// StoreAsync acquires exclusive access, replaces the contained value,
// and releases. Fails exactly when WriteAsync would.
func (c Async[T]) StoreAsync(ctx context.Context, value T) error {
	g, err := c.WriteAsync(ctx)
	if err != nil {
		return err
	}
	*g.Value() = value
	g.Release()
	return nil
}

// Clone mints an additional strong reference to the same allocation.
// O(1), never fails, never suspends.
func (c Async[T]) Clone() Async[T] {
	retain(&c.cell.strong)
	return Async[T]{cell: c.cell}
}

// Release drops this strong reference. After the last strong reference
// is released, weak handles are permanently non-upgradable.
func (c Async[T]) Release() {
	release(&c.cell.strong)
}

// Downgrade produces a weak handle on the same allocation without
// affecting the strong count. O(1), never fails.
func (c Async[T]) Downgrade() WeakAsync[T] {
	return WeakAsync[T]{cell: c.cell}
}

// Serial returns the allocation serial shared by every handle on the
// same cell.
func (c Async[T]) Serial() Serial {
	return c.cell.serial
}

// WeakAsync is a non-owning handle on an [Async] allocation.
type WeakAsync[T any] struct {
	cell *asyncCell[T]
}

// Upgrade attempts to mint a strong handle. Succeeds iff at least one
// strong handle was alive at the instant of the check; under concurrency
// that truth holds only at that instant, not henceforth. Never panics,
// never allocates on failure.
func (w WeakAsync[T]) Upgrade() (Async[T], bool) {
	if !upgrade(&w.cell.strong) {
		return Async[T]{}, false
	}
	return Async[T]{cell: w.cell}, true
}

// Clone duplicates the weak handle. Does not affect the strong count.
func (w WeakAsync[T]) Clone() WeakAsync[T] {
	return w
}

// AsyncReadGuard proves shared access to an [Async] cell for its
// lifetime. May coexist with other AsyncReadGuards, never with an
// AsyncWriteGuard.
type AsyncReadGuard[T any] struct {
	cell *asyncCell[T]
}

// Value returns the guarded value. Callers must not mutate through a
// read guard and must not retain the pointer past Release.
func (g *AsyncReadGuard[T]) Value() *T {
	return &g.cell.value
}

// Release ends the shared access, resuming one or more suspended
// acquirers. Must be called exactly once, on every exit path.
func (g *AsyncReadGuard[T]) Release() {
	g.cell.sem.Release(1)
}

// AsyncWriteGuard proves exclusive access to an [Async] cell for its
// lifetime.
type AsyncWriteGuard[T any] struct {
	cell *asyncCell[T]
}

// Value returns the guarded value for reading and mutation.
// The pointer must not be retained past Release.
func (g *AsyncWriteGuard[T]) Value() *T {
	return &g.cell.value
}

// Release ends the exclusive access, resuming suspended acquirers.
// Must be called exactly once, on every exit path.
func (g *AsyncWriteGuard[T]) Release() {
	g.cell.sem.Release(asyncUnits)
}
