// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// accessDispatcher is the structural interface for access operations.
// DispatchAccess is non-blocking: it returns iox.ErrWouldBlock at the
// contention boundary while a conflicting holder is outstanding.
// Operations carry their target cell, so a single handler dispatches
// accesses on any number of containers.
type accessDispatcher interface {
	DispatchAccess() (kont.Resumed, error)
}

// AcquireRead is the effect operation for shared acquisition on C.
// Perform(AcquireRead[T]{C: c}) suspends until shared access is granted.
type AcquireRead[T any] struct {
	kont.Phantom[*AsyncReadGuard[T]]
	C Async[T]
}

// DispatchAccess handles AcquireRead on the suspending backend.
// Non-blocking: returns iox.ErrWouldBlock while an exclusive access is
// outstanding. Nothing is held on failure, so discarding the suspension
// cancels the acquisition without corrupting lock state.
func (op AcquireRead[T]) DispatchAccess() (kont.Resumed, error) {
	g, ok := op.C.TryRead()
	if !ok {
		return nil, iox.ErrWouldBlock
	}
	return g, nil
}

// AcquireWrite is the effect operation for exclusive acquisition on C.
// Perform(AcquireWrite[T]{C: c}) suspends until exclusive access is
// granted.
type AcquireWrite[T any] struct {
	kont.Phantom[*AsyncWriteGuard[T]]
	C Async[T]
}

// DispatchAccess handles AcquireWrite on the suspending backend.
// Non-blocking: returns iox.ErrWouldBlock while any access is
// outstanding.
func (op AcquireWrite[T]) DispatchAccess() (kont.Resumed, error) {
	g, ok := op.C.TryWrite()
	if !ok {
		return nil, iox.ErrWouldBlock
	}
	return g, nil
}

// Snapshot is the effect operation for copying the value of C.
// Perform(Snapshot[T]{C: c}) acquires shared access, copies the value,
// releases, and resumes with the copy.
type Snapshot[T any] struct {
	kont.Phantom[T]
	C Async[T]
}

// DispatchAccess handles Snapshot on the suspending backend.
// Non-blocking: returns iox.ErrWouldBlock while an exclusive access is
// outstanding. The guard never escapes the dispatch.
func (op Snapshot[T]) DispatchAccess() (kont.Resumed, error) {
	g, ok := op.C.TryRead()
	if !ok {
		return nil, iox.ErrWouldBlock
	}
	v := *g.Value()
	g.Release()
	return v, nil
}

// Put is the effect operation for replacing the value of C.
// Perform(Put[T]{C: c, Value: v}) acquires exclusive access, stores
// Value, releases, and resumes.
type Put[T any] struct {
	kont.Phantom[struct{}]
	C     Async[T]
	Value T
}

// DispatchAccess handles Put on the suspending backend.
// Non-blocking: returns iox.ErrWouldBlock while any access is
// outstanding. The guard never escapes the dispatch.
func (op Put[T]) DispatchAccess() (kont.Resumed, error) {
	g, ok := op.C.TryWrite()
	if !ok {
		return nil, iox.ErrWouldBlock
	}
	*g.Value() = op.Value
	g.Release()
	return struct{}{}, nil
}
