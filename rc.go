// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shared

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing allocation identifier.
// Each cell allocation is assigned the next serial value; clones,
// downgrades, and [Any] wrappers of one allocation share its serial.
type Serial = uint32

// counter is the global monotonic counter for allocation serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}

// retain increments the strong count. Infallible; the caller must hold a
// live strong reference to the same cell.
func retain(strong *atomix.Uint32) {
	strong.Add(1)
}

// release decrements the strong count and reports whether this was the
// last strong reference. Once the count reaches zero, every weak handle
// on the cell is permanently non-upgradable; there is no resurrection.
// The payload's memory is reclaimed by the garbage collector once all
// handles and guards are unreachable.
func release(strong *atomix.Uint32) bool {
	return strong.Add(^uint32(0)) == 0
}

// upgrade attempts to mint a new strong reference from a weak one.
// Succeeds iff the strong count is greater than zero at the check
// instant; that truth is best-effort under concurrency and holds only at
// the instant checked, not henceforth.
func upgrade(strong *atomix.Uint32) bool {
	for {
		n := strong.Load()
		if n == 0 {
			return false
		}
		if strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
}
