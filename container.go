// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// syncCell is the shared allocation behind the thread-safe backend:
// the value, its lock, the sticky poison flag, and the strong count.
// poisoned is guarded by mu.
type syncCell[T any] struct {
	mu       sync.RWMutex
	value    T
	poisoned bool
	strong   atomix.Uint32
	serial   Serial
}

// Container is a strong handle on thread-safe shared data.
// Acquisition blocks the calling OS thread until the lock is free.
// All clones of a Container reference the same allocation: a write
// through any clone is visible to subsequent reads through any other,
// with happens-before supplied by the lock.
//
// A Container may be copied freely; copies alias the same strong
// reference. Use [Container.Clone] to mint an additional strong
// reference and [Container.Release] to drop one.
type Container[T any] struct {
	cell *syncCell[T]
}

// New creates a Container holding value, with strong count 1.
// Always succeeds; this is the only allocation the backend performs.
func New[T any](value T) Container[T] {
	c := &syncCell[T]{value: value, serial: nextSerial()}
	c.strong.Add(1)
	return Container[T]{cell: c}
}

// Read acquires shared access, blocking until no exclusive access is
// outstanding. Returns Poisoned if a prior exclusive access was
// abandoned by a panic.
func (c Container[T]) Read() (*ReadGuard[T], error) {
	c.cell.mu.RLock()
	if c.cell.poisoned {
		c.cell.mu.RUnlock()
		return nil, Poisoned
	}
	return &ReadGuard[T]{cell: c.cell}, nil
}

// Write acquires exclusive access, blocking until all other accesses are
// released. Returns Poisoned if a prior exclusive access was abandoned
// by a panic.
func (c Container[T]) Write() (*WriteGuard[T], error) {
	c.cell.mu.Lock()
	if c.cell.poisoned {
		c.cell.mu.Unlock()
		return nil, Poisoned
	}
	return &WriteGuard[T]{cell: c.cell}, nil
}

// Load acquires shared access, copies the contained value, releases,
// and returns the copy. Fails exactly when Read would fail.
func (c Container[T]) Load() (T, error) {
	g, err := c.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	v := *g.Value()
	g.Release()
	return v, nil
}

// Store acquires exclusive access, replaces the contained value,
// and releases. Fails exactly when Write would fail.
func (c Container[T]) Store(value T) error {
	g, err := c.Write()
	if err != nil {
		return err
	}
	*g.Value() = value
	g.Release()
	return nil
}

// ClearPoison clears the sticky poison flag, re-admitting accesses.
// The caller takes responsibility for the consistency of the value;
// this package never clears poison on its own.
func (c Container[T]) ClearPoison() {
	c.cell.mu.Lock()
	c.cell.poisoned = false
	c.cell.mu.Unlock()
}

// Clone mints an additional strong reference to the same allocation.
// O(1), never fails, never blocks.
func (c Container[T]) Clone() Container[T] {
	retain(&c.cell.strong)
	return Container[T]{cell: c.cell}
}

// Release drops this strong reference. After the last strong reference
// is released, weak handles are permanently non-upgradable. The handle
// (and its copies) must not be used after Release.
func (c Container[T]) Release() {
	release(&c.cell.strong)
}

// Downgrade produces a weak handle on the same allocation without
// affecting the strong count. O(1), never fails.
func (c Container[T]) Downgrade() Weak[T] {
	return Weak[T]{cell: c.cell}
}

// Serial returns the allocation serial shared by every handle on the
// same cell.
func (c Container[T]) Serial() Serial {
	return c.cell.serial
}

// Weak is a non-owning handle on a [Container] allocation. It does not
// keep the strong count alive and exists only to be upgraded.
type Weak[T any] struct {
	cell *syncCell[T]
}

// Upgrade attempts to mint a strong handle. Succeeds iff at least one
// strong handle was alive at the instant of the check; under concurrency
// that truth holds only at that instant, not henceforth. Never panics,
// never allocates on failure.
func (w Weak[T]) Upgrade() (Container[T], bool) {
	if !upgrade(&w.cell.strong) {
		return Container[T]{}, false
	}
	return Container[T]{cell: w.cell}, true
}

// Clone duplicates the weak handle. Does not affect the strong count.
func (w Weak[T]) Clone() Weak[T] {
	return w
}

// ReadGuard proves shared access to a [Container] cell for its lifetime.
// May coexist with other ReadGuards, never with a WriteGuard.
type ReadGuard[T any] struct {
	cell *syncCell[T]
}

// Value returns the guarded value. Callers must not mutate through a
// read guard and must not retain the pointer past Release.
func (g *ReadGuard[T]) Value() *T {
	return &g.cell.value
}

// Release ends the shared access. Must be called exactly once, on every
// exit path; `defer g.Release()` is the intended discipline.
func (g *ReadGuard[T]) Release() {
	g.cell.mu.RUnlock()
}

// WriteGuard proves exclusive access to a [Container] cell for its
// lifetime. Never coexists with any other guard on the same cell.
type WriteGuard[T any] struct {
	cell *syncCell[T]
}

// Value returns the guarded value for reading and mutation.
// The pointer must not be retained past Release.
func (g *WriteGuard[T]) Value() *T {
	return &g.cell.value
}

// Release ends the exclusive access. When called via a direct
// `defer g.Release()` while a panic is unwinding, it marks the cell
// poisoned before unlocking and re-panics: the mutation was abandoned
// midway and the value is suspect. Poison is sticky until
// [Container.ClearPoison].
func (g *WriteGuard[T]) Release() {
	if r := recover(); r != nil {
		g.cell.poisoned = true
		g.cell.mu.Unlock()
		panic(r)
	}
	g.cell.mu.Unlock()
}
