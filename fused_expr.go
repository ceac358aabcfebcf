// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"code.hybscloud.com/kont"
)

// exprReturnFrame is the pre-allocated terminal frame, avoiding a heap
// escape when boxing ReturnFrame into kont.Frame per Expr construction.
var exprReturnFrame kont.Frame = kont.ReturnFrame{}

// identityResume is the identity resume function for EffectFrame
// construction. Named function produces a static function value,
// consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

func readBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(*AsyncReadGuard[T]) kont.Expr[B])
	result := f(current.(*AsyncReadGuard[T]))
	return kont.Erased(result.Value), result.Frame
}

// ExprReadBind acquires shared access on c and passes the guard to f.
// f owns the guard and must Release it on every path.
// Fuses ExprPerform(AcquireRead[T]{C: c}) + ExprBind.
func ExprReadBind[T, B any](c Async[T], f func(*AsyncReadGuard[T]) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = readBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = AcquireRead[T]{C: c}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func writeBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(*AsyncWriteGuard[T]) kont.Expr[B])
	result := f(current.(*AsyncWriteGuard[T]))
	return kont.Erased(result.Value), result.Frame
}

// ExprWriteBind acquires exclusive access on c and passes the guard to f.
// f owns the guard and must Release it on every path.
// Fuses ExprPerform(AcquireWrite[T]{C: c}) + ExprBind.
func ExprWriteBind[T, B any](c Async[T], f func(*AsyncWriteGuard[T]) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = writeBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = AcquireWrite[T]{C: c}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func snapshotBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	result := f(current.(T))
	return kont.Erased(result.Value), result.Frame
}

// ExprSnapshotBind copies the value of c and passes the copy to f.
// No guard escapes; the shared access is released inside the dispatch.
// Fuses ExprPerform(Snapshot[T]{C: c}) + ExprBind.
func ExprSnapshotBind[T, B any](c Async[T], f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = snapshotBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Snapshot[T]{C: c}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprPutThen replaces the value of c and then continues with next.
// Fuses ExprPerform(Put[T]{C: c, Value: v}) + ExprThen.
func ExprPutThen[T, B any](c Async[T], v T, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Put[T]{C: c, Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}
