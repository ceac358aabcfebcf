// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// accessHandler implements kont.Handler for access effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch into
// blocking evaluation for Exec/ExecExpr.
// Value type: passed to evalFrames on the stack, avoiding heap
// allocation.
type accessHandler[R any] struct{}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (accessHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	aop, ok := op.(accessDispatcher)
	if !ok {
		panic("shared: unhandled effect in accessHandler")
	}
	return dispatchWait(aop), true
}

// dispatchWait retries DispatchAccess until it succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff (contention waiting).
func dispatchWait(aop accessDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := aop.DispatchAccess()
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world access protocol to completion on the calling
// goroutine. Blocks on iox.ErrWouldBlock via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func Exec[R any](protocol kont.Eff[R]) R {
	return kont.Handle(protocol, accessHandler[R]{})
}

// ExecExpr runs an Expr-world access protocol to completion on the
// calling goroutine. Blocks on iox.ErrWouldBlock via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func ExecExpr[R any](protocol kont.Expr[R]) R {
	return kont.HandleExpr(protocol, accessHandler[R]{})
}
