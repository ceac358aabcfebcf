// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"code.hybscloud.com/kont"
)

// Step evaluates an access protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended access operation. Operations carry
// their target cell, so no further argument is needed.
// DispatchAccess is non-blocking: it returns iox.ErrWouldBlock while a
// conflicting holder is outstanding (the contention boundary).
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be retried
// after another holder releases, or abandoned with susp.Discard(),
// which cancels the in-flight acquisition without corrupting lock state
// (dispatch only ever try-acquires, so a pending suspension holds
// nothing).
func Advance[R any](susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	aop, ok := susp.Op().(accessDispatcher)
	if !ok {
		panic("shared: unhandled effect in Advance")
	}
	v, err := aop.DispatchAccess()
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
