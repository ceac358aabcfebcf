// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/shared"
)

func TestAsyncReadInitialValue(t *testing.T) {
	c := shared.NewAsync(42)
	g, err := c.ReadAsync(context.Background())
	if err != nil {
		t.Fatalf("ReadAsync failed: %v", err)
	}
	if *g.Value() != 42 {
		t.Fatalf("got %d, want 42", *g.Value())
	}
	g.Release()
}

func TestAsyncWriteThenLoad(t *testing.T) {
	ctx := context.Background()
	c := shared.NewAsync(1)
	g, err := c.WriteAsync(ctx)
	if err != nil {
		t.Fatalf("WriteAsync failed: %v", err)
	}
	*g.Value() = 100
	g.Release()

	v, err := c.LoadAsync(ctx)
	if err != nil {
		t.Fatalf("LoadAsync failed: %v", err)
	}
	if v != 100 {
		t.Fatalf("got %d, want 100", v)
	}
}

func TestAsyncTryWhileExclusiveHeld(t *testing.T) {
	c := shared.NewAsync(1)
	g, ok := c.TryWrite()
	if !ok {
		t.Fatal("TryWrite failed on a free cell")
	}
	if _, ok := c.TryRead(); ok {
		t.Fatal("TryRead succeeded while exclusive access outstanding")
	}
	if _, ok := c.TryWrite(); ok {
		t.Fatal("TryWrite succeeded while exclusive access outstanding")
	}
	g.Release()

	rg, ok := c.TryRead()
	if !ok {
		t.Fatal("TryRead failed after release")
	}
	// Shared accesses coexist; exclusive does not.
	rg2, ok := c.TryRead()
	if !ok {
		t.Fatal("second TryRead failed under shared access")
	}
	if _, ok := c.TryWrite(); ok {
		t.Fatal("TryWrite succeeded while shared access outstanding")
	}
	rg2.Release()
	rg.Release()
}

func TestAsyncAcquireCancelled(t *testing.T) {
	c := shared.NewAsync(1)
	g, ok := c.TryWrite()
	if !ok {
		t.Fatal("TryWrite failed on a free cell")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ReadAsync(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadAsync got %v, want context.Canceled", err)
	}
	if _, err := c.WriteAsync(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("WriteAsync got %v, want context.Canceled", err)
	}
	g.Release()

	// The abandoned acquisitions left the lock uncorrupted.
	wg, err := c.WriteAsync(context.Background())
	if err != nil {
		t.Fatalf("WriteAsync after cancellation failed: %v", err)
	}
	wg.Release()
}

func TestAsyncSuspendsUntilRelease(t *testing.T) {
	c := shared.NewAsync(0)
	g, ok := c.TryWrite()
	if !ok {
		t.Fatal("TryWrite failed on a free cell")
	}
	go func() {
		*g.Value() = 9
		g.Release()
	}()

	rg, err := c.ReadAsync(context.Background())
	if err != nil {
		t.Fatalf("ReadAsync failed: %v", err)
	}
	if *rg.Value() != 9 {
		t.Fatalf("got %d, want 9", *rg.Value())
	}
	rg.Release()
}

func TestAsyncStoreLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := shared.NewAsync("a")
	clone := c.Clone()
	defer clone.Release()

	if err := clone.StoreAsync(ctx, "b"); err != nil {
		t.Fatalf("StoreAsync failed: %v", err)
	}
	v, err := c.LoadAsync(ctx)
	if err != nil {
		t.Fatalf("LoadAsync failed: %v", err)
	}
	if v != "b" {
		t.Fatalf("got %q, want %q", v, "b")
	}
}
