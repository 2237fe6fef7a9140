// Package types models the data layout of a reconfigurable hardware target.
//
// A Descriptor is built once from the hardware's compiled type tree (Node)
// and then shared read-only by every register and FIFO accessor:
//
//	Tag                     Descriptor      Bit width
//	──────────────────────────────────────────────────────────────
//	Boolean                 Primitive       1
//	I8/U8 (EnumI8/EnumU8)   Primitive       8
//	I16/U16                 Primitive       16
//	I32/U32, SGL            Primitive       32
//	I64/U64, DBL            Primitive       64
//	FXP                     FixedPoint      word length (+1 with overflow flag)
//	Array                   Array           element width × size
//	Cluster                 Cluster         Σ field widths
//	String                  Opaque          0
//
// Descriptors render in a compact notation that package typeexpr parses back:
//
//	cluster{status: bool, code: i32, source: string}
//	[4]fxp<s,16,8>
//	fxp<u,12,4,overflow>
//
// Fixed-point arithmetic is exact: Delta, Min and Max are big.Rat values and
// FixedPointValue carries an apd.Decimal.
package types
