// Package bits implements the LSB-first bit cursor used by the transcoder.
//
// Bit 0 of a field lands in the lowest free bit of the buffer; bytes are
// addressed in ascending order. A field of n bits starting at bit position
// p therefore occupies bits p..p+n-1 of the buffer read as one little-endian
// integer.
//
// The Reader never fails: bits past the end of its buffer read as zero. The
// Writer grows its buffer on demand and zero-fills new bytes.
package bits
