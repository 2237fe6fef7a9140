package coerce

import (
	"math"
	"reflect"
)

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// FitsSigned reports whether v is representable in a two's-complement
// integer of the given width.
func FitsSigned(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	lo := int64(-1) << (bits - 1)
	return v >= lo && v <= ^lo
}

// FitsUnsigned reports whether v is representable in an unsigned integer of
// the given width.
func FitsUnsigned(v uint64, bits int) bool {
	if bits >= 64 {
		return true
	}
	return v <= uint64(math.MaxUint64)>>(64-bits)
}
