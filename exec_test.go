// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared_test

import (
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/shared"
)

func TestExecPutSnapshot(t *testing.T) {
	c := shared.NewAsync(0)
	protocol := shared.PutThen(c, 42,
		shared.SnapshotBind(c, func(n int) kont.Eff[int] {
			return kont.Pure(n)
		}),
	)
	if got := shared.Exec(protocol); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestExecReadBindGuard(t *testing.T) {
	c := shared.NewAsync("hello")
	protocol := shared.ReadBind(c, func(g *shared.AsyncReadGuard[string]) kont.Eff[string] {
		v := *g.Value()
		g.Release()
		return kont.Pure(v)
	})
	if got := shared.Exec(protocol); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestExecWriteBindMutates(t *testing.T) {
	c := shared.NewAsync(10)
	protocol := shared.WriteBind(c, func(g *shared.AsyncWriteGuard[int]) kont.Eff[int] {
		*g.Value() *= 2
		g.Release()
		return shared.SnapshotBind(c, func(n int) kont.Eff[int] {
			return kont.Pure(n)
		})
	})
	if got := shared.Exec(protocol); got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestExecExprPutSnapshot(t *testing.T) {
	c := shared.NewAsync(0)
	protocol := shared.ExprPutThen(c, 7,
		shared.ExprSnapshotBind(c, func(n int) kont.Expr[int] {
			return kont.ExprReturn(n)
		}),
	)
	if got := shared.ExecExpr(protocol); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestLoopIncrementsUntilDone(t *testing.T) {
	c := shared.NewAsync(0)
	protocol := shared.Loop(0, func(i int) kont.Eff[kont.Either[int, int]] {
		if i == 3 {
			return shared.SnapshotBind(c, func(n int) kont.Eff[kont.Either[int, int]] {
				return kont.Pure(kont.Right[int, int](n))
			})
		}
		return shared.PutThen(c, i+1, kont.Pure(kont.Left[int, int](i+1)))
	})
	if got := shared.Exec(protocol); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestInterleaveProducerConsumer(t *testing.T) {
	c := shared.NewAsync(0)
	producer := shared.PutThen(c, 1,
		shared.PutThen(c, 2,
			shared.PutThen(c, 3, kont.Pure(struct{}{})),
		),
	)
	consumer := shared.Loop(0, func(int) kont.Eff[kont.Either[int, int]] {
		return shared.SnapshotBind(c, func(v int) kont.Eff[kont.Either[int, int]] {
			if v == 3 {
				return kont.Pure(kont.Right[int, int](v))
			}
			return kont.Pure(kont.Left[int, int](v))
		})
	})

	_, got := shared.Interleave(producer, consumer)
	if got != 3 {
		t.Fatalf("consumer got %d, want 3", got)
	}
}

func TestInterleaveBackoffUnderContention(t *testing.T) {
	c := shared.NewAsync(1)
	g, ok := c.TryWrite()
	if !ok {
		t.Fatal("TryWrite failed on a free cell")
	}
	go func() {
		time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()
		*g.Value() = 2
		g.Release()
	}()

	snapshot := func() kont.Eff[int] {
		return shared.SnapshotBind(c, func(n int) kont.Eff[int] {
			return kont.Pure(n)
		})
	}
	ra, rb := shared.Interleave(snapshot(), snapshot())
	if ra != 2 || rb != 2 {
		t.Fatalf("got %d/%d, want 2/2", ra, rb)
	}
}

func TestReflectRoundTrip(t *testing.T) {
	c := shared.NewAsync(0)
	expr := shared.ExprPutThen(c, 5,
		shared.ExprSnapshotBind(c, func(n int) kont.Expr[int] {
			return kont.ExprReturn(n)
		}),
	)
	if got := shared.Exec(shared.Reflect(expr)); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}
