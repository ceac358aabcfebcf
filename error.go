// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

// AccessError is the closed set of failure reasons returned by fallible
// container accessors. Every fallible operation reports its error to the
// immediate caller; this package never retries, recovers, or clears state
// on its own.
type AccessError uint8

const (
	// Poisoned reports that a prior exclusive access on the cell was
	// abandoned mid-mutation by a panic, leaving the value suspect.
	// Thread-safe backend only. Sticky until [Container.ClearPoison].
	Poisoned AccessError = iota + 1

	// BorrowConflict reports an overlapping incompatible borrow detected
	// at runtime. Single-goroutine backend only. Never blocks: the
	// conflict is an immediate failure the caller must restructure around.
	BorrowConflict

	// UnsupportedMode reports that the requested accessor is not offered
	// by the active backend, e.g. a synchronous accessor on an [Any]
	// wrapping a suspending backend. A logic bug in the caller, not a
	// transient condition.
	UnsupportedMode
)

// Error implements the error interface.
func (e AccessError) Error() string {
	switch e {
	case Poisoned:
		return "shared: cell poisoned by abandoned exclusive access"
	case BorrowConflict:
		return "shared: borrow conflict, access already outstanding"
	case UnsupportedMode:
		return "shared: accessor not supported by active backend"
	}
	return "shared: unknown access error"
}
