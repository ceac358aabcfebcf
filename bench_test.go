// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/shared"
)

// BenchmarkContainerLoad measures a read-copy-release cycle.
func BenchmarkContainerLoad(b *testing.B) {
	c := shared.New(42)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := c.Load(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkContainerWriteCycle measures an exclusive acquire-release.
func BenchmarkContainerWriteCycle(b *testing.B) {
	c := shared.New(0)
	b.ReportAllocs()
	for b.Loop() {
		g, err := c.Write()
		if err != nil {
			b.Fatal(err)
		}
		*g.Value()++
		g.Release()
	}
}

// BenchmarkCloneRelease measures strong-reference churn.
func BenchmarkCloneRelease(b *testing.B) {
	c := shared.New(0)
	b.ReportAllocs()
	for b.Loop() {
		clone := c.Clone()
		clone.Release()
	}
}

// BenchmarkLocalReadCycle measures a borrow-check acquire-release.
func BenchmarkLocalReadCycle(b *testing.B) {
	c := shared.NewLocal(42)
	b.ReportAllocs()
	for b.Loop() {
		g, err := c.Read()
		if err != nil {
			b.Fatal(err)
		}
		g.Release()
	}
}

// BenchmarkAsyncTryReadCycle measures a non-blocking acquire-release.
func BenchmarkAsyncTryReadCycle(b *testing.B) {
	c := shared.NewAsync(42)
	b.ReportAllocs()
	for b.Loop() {
		g, ok := c.TryRead()
		if !ok {
			b.Fatal("TryRead failed on a free cell")
		}
		g.Release()
	}
}

// BenchmarkExecPutSnapshot measures a 2-effect cooperative protocol.
func BenchmarkExecPutSnapshot(b *testing.B) {
	c := shared.NewAsync(0)
	b.ReportAllocs()
	for b.Loop() {
		protocol := shared.PutThen(c, 1,
			shared.SnapshotBind(c, func(n int) kont.Eff[int] {
				return kont.Pure(n)
			}),
		)
		shared.Exec(protocol)
	}
}

// BenchmarkExprSnapshotStep measures stepping a single-effect protocol.
func BenchmarkExprSnapshotStep(b *testing.B) {
	c := shared.NewAsync(0)
	b.ReportAllocs()
	for b.Loop() {
		protocol := shared.ExprSnapshotBind(c, func(n int) kont.Expr[int] {
			return kont.ExprReturn(n)
		})
		driveExpr(protocol)
	}
}
