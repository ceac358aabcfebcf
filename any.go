// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import "context"

// Mode identifies the backend an [Any] composes. Selected once at
// wrapping time; a handle never changes mode over its lifetime.
type Mode uint8

const (
	// ModeSync tags an Any wrapping a thread-safe [Container].
	ModeSync Mode = iota + 1
	// ModeAsync tags an Any wrapping a suspending [Async].
	ModeAsync
)

// Any is the universal container: a tagged union over the thread-safe
// and suspending backends, for code that must stay generic over both.
// Mismatched accessors fail predictably: synchronous accessors on an
// async cell return UnsupportedMode without blocking; asynchronous
// accessors on a sync cell resolve immediately with the result of the
// synchronous call.
type Any[T any] struct {
	mode Mode
	sc   Container[T]
	ac   Async[T]
}

// AsAny wraps the Container in the universal form. Infallible and
// identity-preserving: accesses through the wrapper observe the same
// allocation (and serial) as the original handle.
func (c Container[T]) AsAny() Any[T] {
	return Any[T]{mode: ModeSync, sc: c}
}

// AsAny wraps the Async in the universal form. Infallible and
// identity-preserving.
func (c Async[T]) AsAny() Any[T] {
	return Any[T]{mode: ModeAsync, ac: c}
}

// Mode returns the tag of the wrapped backend.
func (c Any[T]) Mode() Mode {
	return c.mode
}

// Read acquires shared access synchronously. On an async cell it
// returns UnsupportedMode deterministically, never blocks.
func (c Any[T]) Read() (*AnyReadGuard[T], error) {
	if c.mode != ModeSync {
		return nil, UnsupportedMode
	}
	g, err := c.sc.Read()
	if err != nil {
		return nil, err
	}
	return &AnyReadGuard[T]{r: g}, nil
}

// Write acquires exclusive access synchronously. On an async cell it
// returns UnsupportedMode deterministically, never blocks.
func (c Any[T]) Write() (*AnyWriteGuard[T], error) {
	if c.mode != ModeSync {
		return nil, UnsupportedMode
	}
	g, err := c.sc.Write()
	if err != nil {
		return nil, err
	}
	return &AnyWriteGuard[T]{w: g}, nil
}

// Load returns a copy of the contained value, failing exactly when Read
// would fail.
func (c Any[T]) Load() (T, error) {
	if c.mode != ModeSync {
		var zero T
		return zero, UnsupportedMode
	}
	return c.sc.Load()
}

// Store replaces the contained value, failing exactly when Write would
// fail.
func (c Any[T]) Store(value T) error {
	if c.mode != ModeSync {
		return UnsupportedMode
	}
	return c.sc.Store(value)
}

// ReadAsync acquires shared access. On an async cell it suspends until
// granted or ctx is done. On a sync cell it resolves immediately with
// the same result as the synchronous call, without suspending.
func (c Any[T]) ReadAsync(ctx context.Context) (*AnyReadGuard[T], error) {
	switch c.mode {
	case ModeAsync:
		g, err := c.ac.ReadAsync(ctx)
		if err != nil {
			return nil, err
		}
		return &AnyReadGuard[T]{ar: g}, nil
	case ModeSync:
		g, err := c.sc.Read()
		if err != nil {
			return nil, err
		}
		return &AnyReadGuard[T]{r: g}, nil
	}
	return nil, UnsupportedMode
}

// WriteAsync acquires exclusive access. On an async cell it suspends
// until granted or ctx is done. On a sync cell it resolves immediately
// with the same result as the synchronous call.
func (c Any[T]) WriteAsync(ctx context.Context) (*AnyWriteGuard[T], error) {
	switch c.mode {
	case ModeAsync:
		g, err := c.ac.WriteAsync(ctx)
		if err != nil {
			return nil, err
		}
		return &AnyWriteGuard[T]{aw: g}, nil
	case ModeSync:
		g, err := c.sc.Write()
		if err != nil {
			return nil, err
		}
		return &AnyWriteGuard[T]{w: g}, nil
	}
	return nil, UnsupportedMode
}

// LoadAsync returns a copy of the contained value, suspending on an
// async cell, resolving immediately on a sync cell.
func (c Any[T]) LoadAsync(ctx context.Context) (T, error) {
	switch c.mode {
	case ModeAsync:
		return c.ac.LoadAsync(ctx)
	case ModeSync:
		return c.sc.Load()
	}
	var zero T
	return zero, UnsupportedMode
}

// StoreAsync replaces the contained value, suspending on an async cell,
// resolving immediately on a sync cell.
func (c Any[T]) StoreAsync(ctx context.Context, value T) error {
	switch c.mode {
	case ModeAsync:
		return c.ac.StoreAsync(ctx, value)
	case ModeSync:
		return c.sc.Store(value)
	}
	return UnsupportedMode
}

// Clone mints an additional strong reference to the wrapped allocation.
func (c Any[T]) Clone() Any[T] {
	switch c.mode {
	case ModeSync:
		return Any[T]{mode: ModeSync, sc: c.sc.Clone()}
	case ModeAsync:
		return Any[T]{mode: ModeAsync, ac: c.ac.Clone()}
	}
	return c
}

// Release drops this strong reference.
func (c Any[T]) Release() {
	switch c.mode {
	case ModeSync:
		c.sc.Release()
	case ModeAsync:
		c.ac.Release()
	}
}

// Downgrade produces a weak handle on the wrapped allocation.
func (c Any[T]) Downgrade() WeakAny[T] {
	switch c.mode {
	case ModeSync:
		return WeakAny[T]{mode: ModeSync, sw: c.sc.Downgrade()}
	case ModeAsync:
		return WeakAny[T]{mode: ModeAsync, aw: c.ac.Downgrade()}
	}
	return WeakAny[T]{}
}

// Serial returns the allocation serial of the wrapped cell.
func (c Any[T]) Serial() Serial {
	switch c.mode {
	case ModeSync:
		return c.sc.Serial()
	case ModeAsync:
		return c.ac.Serial()
	}
	return 0
}

// WeakAny is a non-owning handle on an [Any] allocation.
type WeakAny[T any] struct {
	mode Mode
	sw   Weak[T]
	aw   WeakAsync[T]
}

// Upgrade attempts to mint a strong handle, preserving the mode tag.
func (w WeakAny[T]) Upgrade() (Any[T], bool) {
	switch w.mode {
	case ModeSync:
		c, ok := w.sw.Upgrade()
		if !ok {
			return Any[T]{}, false
		}
		return Any[T]{mode: ModeSync, sc: c}, true
	case ModeAsync:
		c, ok := w.aw.Upgrade()
		if !ok {
			return Any[T]{}, false
		}
		return Any[T]{mode: ModeAsync, ac: c}, true
	}
	return Any[T]{}, false
}

// Clone duplicates the weak handle. Does not affect the strong count.
func (w WeakAny[T]) Clone() WeakAny[T] {
	return w
}

// AnyReadGuard proves shared access acquired through an [Any], tagged
// by the backend that granted it.
type AnyReadGuard[T any] struct {
	r  *ReadGuard[T]
	ar *AsyncReadGuard[T]
}

// Value returns the guarded value. Callers must not mutate through a
// read guard and must not retain the pointer past Release.
func (g *AnyReadGuard[T]) Value() *T {
	if g.r != nil {
		return g.r.Value()
	}
	return g.ar.Value()
}

// Release ends the shared access on whichever backend granted it.
func (g *AnyReadGuard[T]) Release() {
	if g.r != nil {
		g.r.Release()
		return
	}
	g.ar.Release()
}

// AnyWriteGuard proves exclusive access acquired through an [Any],
// tagged by the backend that granted it.
type AnyWriteGuard[T any] struct {
	w  *WriteGuard[T]
	aw *AsyncWriteGuard[T]
}

// Value returns the guarded value for reading and mutation.
// The pointer must not be retained past Release.
func (g *AnyWriteGuard[T]) Value() *T {
	if g.w != nil {
		return g.w.Value()
	}
	return g.aw.Value()
}

// Release ends the exclusive access on whichever backend granted it.
// A sync-mode guard released via a direct defer during a panic poisons
// its cell exactly as [WriteGuard.Release] does.
func (g *AnyWriteGuard[T]) Release() {
	if g.w != nil {
		if r := recover(); r != nil {
			g.w.cell.poisoned = true
			g.w.cell.mu.Unlock()
			panic(r)
		}
		g.w.cell.mu.Unlock()
		return
	}
	g.aw.Release()
}
