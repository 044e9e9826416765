package format

import "github.com/joshuapare/heapkit/internal/buf"

// Pad returns n rounded up to the next multiple of Alignment.
//
// Example:
//
//	Pad(1)  = 16
//	Pad(16) = 16
//	Pad(17) = 32
func Pad(n int) int {
	return (n + AlignmentMask) &^ AlignmentMask
}

// PadChecked is Pad for untrusted sizes. It reports ok = false when n is not
// positive or when rounding up would overflow int.
func PadChecked(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	sum, ok := buf.AddOverflowSafe(n, AlignmentMask)
	if !ok {
		return 0, false
	}
	return sum &^ AlignmentMask, true
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n int) bool {
	return n&AlignmentMask == 0
}
