// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

// localCell is the shared allocation behind the single-goroutine
// backend: the value, the borrow state, and a plain strong count.
// borrow is 0 when free, the reader count while shared borrows are
// outstanding, and -1 while an exclusive borrow is outstanding.
// No field is synchronized: the backend assumes no parallel access is
// ever attempted.
type localCell[T any] struct {
	value  T
	borrow int
	strong uint32
	serial Serial
}

// Local is a strong handle on single-goroutine shared data. Instead of
// blocking, acquisition performs a runtime borrow check and fails fast
// with BorrowConflict on overlap. Local and all its clones, weak
// handles, and guards must stay confined to one goroutine.
type Local[T any] struct {
	cell *localCell[T]
}

// NewLocal creates a Local holding value, with strong count 1.
// Always succeeds.
func NewLocal[T any](value T) Local[T] {
	return Local[T]{cell: &localCell[T]{value: value, strong: 1, serial: nextSerial()}}
}

// Read acquires shared access. Returns BorrowConflict immediately if an
// exclusive borrow is outstanding; never blocks. Shared borrows nest.
func (c Local[T]) Read() (*LocalReadGuard[T], error) {
	if c.cell.borrow < 0 {
		return nil, BorrowConflict
	}
	c.cell.borrow++
	return &LocalReadGuard[T]{cell: c.cell}, nil
}

// Write acquires exclusive access. Returns BorrowConflict immediately if
// any borrow is outstanding; never blocks.
func (c Local[T]) Write() (*LocalWriteGuard[T], error) {
	if c.cell.borrow != 0 {
		return nil, BorrowConflict
	}
	c.cell.borrow = -1
	return &LocalWriteGuard[T]{cell: c.cell}, nil
}

// Load acquires shared access, copies the contained value, releases,
// and returns the copy. Fails exactly when Read would fail.
func (c Local[T]) Load() (T, error) {
	g, err := c.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	v := *g.Value()
	g.Release()
	return v, nil
}

// Store acquires exclusive access, replaces the contained value, and
// releases. Fails exactly when Write would fail.
func (c Local[T]) Store(value T) error {
	g, err := c.Write()
	if err != nil {
		return err
	}
	*g.Value() = value
	g.Release()
	return nil
}

// Clone mints an additional strong reference to the same allocation.
// O(1), never fails.
func (c Local[T]) Clone() Local[T] {
	c.cell.strong++
	return Local[T]{cell: c.cell}
}

// Release drops this strong reference. After the last strong reference
// is released, weak handles are permanently non-upgradable.
func (c Local[T]) Release() {
	c.cell.strong--
}

// Downgrade produces a weak handle on the same allocation without
// affecting the strong count. O(1), never fails.
func (c Local[T]) Downgrade() WeakLocal[T] {
	return WeakLocal[T]{cell: c.cell}
}

// Serial returns the allocation serial shared by every handle on the
// same cell.
func (c Local[T]) Serial() Serial {
	return c.cell.serial
}

// WeakLocal is a non-owning handle on a [Local] allocation.
type WeakLocal[T any] struct {
	cell *localCell[T]
}

// Upgrade attempts to mint a strong handle. Succeeds iff at least one
// strong handle is still alive. Never panics, never allocates on
// failure.
func (w WeakLocal[T]) Upgrade() (Local[T], bool) {
	if w.cell.strong == 0 {
		return Local[T]{}, false
	}
	w.cell.strong++
	return Local[T]{cell: w.cell}, true
}

// Clone duplicates the weak handle. Does not affect the strong count.
func (w WeakLocal[T]) Clone() WeakLocal[T] {
	return w
}

// LocalReadGuard proves a shared borrow of a [Local] cell for its
// lifetime. Shared borrows may nest; they exclude exclusive borrows.
type LocalReadGuard[T any] struct {
	cell *localCell[T]
}

// Value returns the guarded value. Callers must not mutate through a
// read guard and must not retain the pointer past Release.
func (g *LocalReadGuard[T]) Value() *T {
	return &g.cell.value
}

// Release ends the shared borrow. Must be called exactly once, on every
// exit path.
func (g *LocalReadGuard[T]) Release() {
	g.cell.borrow--
}

// LocalWriteGuard proves an exclusive borrow of a [Local] cell for its
// lifetime.
type LocalWriteGuard[T any] struct {
	cell *localCell[T]
}

// Value returns the guarded value for reading and mutation.
// The pointer must not be retained past Release.
func (g *LocalWriteGuard[T]) Value() *T {
	return &g.cell.value
}

// Release ends the exclusive borrow. Must be called exactly once, on
// every exit path.
func (g *LocalWriteGuard[T]) Release() {
	g.cell.borrow = 0
}
