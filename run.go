// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Interleave runs two Cont-world access protocols to completion on the
// calling goroutine, alternating between them so that one side's held
// guard can be released while the other waits. Backs off adaptively
// (iox.Backoff) when neither side can make progress. Does not spawn
// goroutines or create channels; this is the cooperative counterpart of
// running each protocol on its own OS thread.
func Interleave[A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B) {
	return InterleaveExpr(Reify(a), Reify(b))
}

// InterleaveExpr runs two Expr-world access protocols to completion on
// the calling goroutine, alternating between them with adaptive backoff
// (iox.Backoff) when neither side can make progress.
func InterleaveExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B) {
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff
	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(suspB)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
