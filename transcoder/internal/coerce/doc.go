// Package coerce converts loosely typed host values into the exact numeric
// forms the bit codec writes.
//
// Values reach the codec as any: native Go numbers, float64 from JSON, or
// json.Number when the decoder was configured with UseNumber. Every helper
// reports ok=false instead of truncating.
//
// # Contents
//
//   - coerce.go: integer, float and bool coercion
//   - rat.go: exact rational conversion for fixed-point values
//   - helpers.go: type names and range checks shared by pack and unpack
//
// This package is internal to the transcoder.
package coerce
