// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared_test

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/shared"
)

// driveExpr drives a protocol to completion via Step+Advance loop.
// Retries on iox.ErrWouldBlock (a holder not released yet).
// Used by stepping tests to exercise the non-blocking path.
func driveExpr[R any](protocol kont.Expr[R]) R {
	result, susp := shared.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = shared.Advance(susp)
		if err != nil {
			continue
		}
	}
	return result
}
