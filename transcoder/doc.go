// Package transcoder converts between host values and the bit patterns
// exchanged with the hardware.
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│ Go value ←→ [Pack/Unpack] ←→ packed bits ←→ [align] ←→ transport │
//	└──────────────────────────────────────────────────────────────────┘
//
// # Bit Layout
//
// Patterns are LSB-first: bit 0 of the first field written lands in bit 0
// of byte 0. Composite types nest as follows:
//
//	Descriptor   Host value (unpack)         Order in pattern
//	──────────────────────────────────────────────────────────────────
//	Bool         bool                        1 bit
//	I8..I64      int8..int64                 two's complement
//	U8..U64      uint8..uint64
//	F32/F64      float32/float64             IEEE-754 bits
//	FixedPoint   types.FixedPointValue       overflow bit, then payload
//	Array        []any                       last element first
//	Cluster      map[string]any              first field first
//	Opaque       ""                          zero bits
//
// Array elements are written from the last index down, so the first
// element occupies the most significant end of the array's bit field.
// Cluster fields are not reversed. Packing [2]u8{0x11, 0x22} yields bytes
// 22 11; packing cluster{a: u8, b: u8}{a: 0x11, b: 0x22} yields 11 22.
//
// # Host Values
//
// Pack accepts loosely typed input: any Go integer or float, json.Number,
// and for fixed-point also decimal strings, *apd.Decimal and *big.Rat.
// Integers must fit the target width exactly; fixed-point values are
// clamped into range and rounded half to even. Arrays accept any slice or
// Go array; clusters accept any map keyed by string. Extra map keys are
// ignored.
//
// # Transfer Units
//
// PackRegister/UnpackRegister move values through 32-bit register words.
// PackStream/UnpackStream move sequences of fixed-size stream elements.
// Both left-align composite values within their unit; see package align.
//
// # Thread Safety
//
// Descriptors are immutable and every call allocates its own buffers, so
// all functions are safe for concurrent use.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[pack] field_missing at config.limits: required field "hi" not found
//	[pack] overflow at samples[3]: HW type u8 - value 300 overflows u8
package transcoder
