// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"code.hybscloud.com/kont"
)

// ReadBind acquires shared access on c and passes the guard to f.
// f owns the guard and must Release it on every path before the
// protocol performs another exclusive access on the same cell.
// Fuses Perform(AcquireRead[T]{C: c}) + Bind.
func ReadBind[T, B any](c Async[T], f func(*AsyncReadGuard[T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(AcquireRead[T]{C: c}), f)
}

// WriteBind acquires exclusive access on c and passes the guard to f.
// f owns the guard and must Release it on every path.
// Fuses Perform(AcquireWrite[T]{C: c}) + Bind.
func WriteBind[T, B any](c Async[T], f func(*AsyncWriteGuard[T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(AcquireWrite[T]{C: c}), f)
}

// SnapshotBind copies the value of c and passes the copy to f.
// No guard escapes; the shared access is released inside the dispatch.
// Fuses Perform(Snapshot[T]{C: c}) + Bind.
func SnapshotBind[T, B any](c Async[T], f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Snapshot[T]{C: c}), f)
}

// PutThen replaces the value of c and then continues with next.
// Fuses Perform(Put[T]{C: c, Value: v}) + Then.
func PutThen[T, B any](c Async[T], v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Put[T]{C: c, Value: v}), next)
}
