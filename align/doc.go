// Package align moves a packed bit pattern in and out of fixed-size
// transfer units.
//
// The bit codec produces patterns right-aligned at bit 0. Hardware expects
// them left-aligned within the transfer unit, so every composite value is
// shifted by unitBits-valueBits on the way out and back on the way in. The
// shift treats the whole unit as one little-endian integer of arbitrary
// width.
//
// Register path:
//
//	packed ──shift left──► []uint32 words (word 0 = bytes 0..3)
//
// Stream path, per element:
//
//	write: packed ──shift left──► swap 4-byte groups ──► element bytes
//	read:  element bytes ──swap 4-byte groups──► shift right ──► packed
//
// Primitive stream elements pass through untouched, as do composite
// elements of two bytes or fewer (no swap, shift only).
package align
