package types

type Kind uint8

const (
	KindBool Kind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindFixedPoint
	KindArray
	KindCluster
	KindOpaque
)

var kindNames = [...]string{
	KindBool:       "bool",
	KindI8:         "i8",
	KindU8:         "u8",
	KindI16:        "i16",
	KindU16:        "u16",
	KindI32:        "i32",
	KindU32:        "u32",
	KindI64:        "i64",
	KindU64:        "u64",
	KindF32:        "f32",
	KindF64:        "f64",
	KindFixedPoint: "fxp",
	KindArray:      "array",
	KindCluster:    "cluster",
	KindOpaque:     "opaque",
}

var kindBits = [...]int{
	KindBool: 1,
	KindI8:   8,
	KindU8:   8,
	KindI16:  16,
	KindU16:  16,
	KindI32:  32,
	KindU32:  32,
	KindI64:  64,
	KindU64:  64,
	KindF32:  32,
	KindF64:  64,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a fixed machine type (bool, integers, floats).
func (k Kind) IsPrimitive() bool {
	return k <= KindF64
}

// IsComposite reports whether values of k need bit-level packing and
// transfer unit alignment.
func (k Kind) IsComposite() bool {
	switch k {
	case KindFixedPoint, KindArray, KindCluster:
		return true
	default:
		return false
	}
}

func (k Kind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}

func (k Kind) IsSigned() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	default:
		return false
	}
}
