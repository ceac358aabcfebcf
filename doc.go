// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shared provides one uniform contract for shared, mutably
// accessible data over three backends: a thread-safe blocking lock, a
// single-goroutine borrow-checked cell, and a suspending lock for
// cooperative schedulers.
//
// # Architecture
//
//   - Backends: [Container] (thread-safe, sync.RWMutex with sticky poisoning),
//     [Local] (single-goroutine, runtime borrow check), [Async]
//     (suspending, [golang.org/x/sync/semaphore]). Selection is per
//     constructor and never changes over a handle's lifetime.
//   - Guards: scoped handles proving shared or exclusive access; release
//     on every exit path via defer. A write guard released during a panic
//     poisons its cell.
//   - References: Clone mints strong handles, Downgrade produces weak
//     ones; Upgrade is best-effort, true only at the instant checked.
//   - Errors: the closed [AccessError] taxonomy ([Poisoned],
//     [BorrowConflict], [UnsupportedMode]) instead of backend-specific
//     panics. Retry and poison-clearing policy belong to the caller.
//   - Universal: [Any] holds either a sync or an async cell behind one
//     surface; mismatched accessors fail predictably with
//     [UnsupportedMode].
//
// # API Topologies
//
//   - Synchronous: [Container.Read], [Container.Write], [Container.Load], [Container.Store]; [Local] mirrors the surface with fail-fast borrows.
//   - Suspending: [Async.ReadAsync], [Async.WriteAsync] (context-cancellable), [Async.TryRead], [Async.TryWrite] (non-blocking, [code.hybscloud.com/iox.ErrWouldBlock] boundary).
//   - Cont-world: [ReadBind], [WriteBind], [SnapshotBind], [PutThen] on [code.hybscloud.com/kont] effects.
//   - Expr-world: Zero-allocation variants [ExprReadBind], [ExprWriteBind], [ExprSnapshotBind], [ExprPutThen]. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] for trampoline-based iterative protocols.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] evaluate access protocols one effect
//     at a time for proactor loops; an unconsumed suspension is cancelled
//     with Discard.
//   - Blocking: [Exec], [ExecExpr], [Interleave] wait past contention
//     boundaries using adaptive backoff.
//
// # Example
//
//	c := shared.NewAsync(0)
//	protocol := shared.PutThen(c, 42, shared.SnapshotBind(c, func(n int) kont.Eff[int] {
//		return kont.Pure(n)
//	}))
//	n := shared.Exec(protocol) // 42
package shared
