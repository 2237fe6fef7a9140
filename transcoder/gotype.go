package transcoder

import (
	"reflect"

	"github.com/wippyai/fpga-runtime/types"
)

var primitiveGoTypes = map[types.Kind]reflect.Type{
	types.KindBool: reflect.TypeFor[bool](),
	types.KindI8:   reflect.TypeFor[int8](),
	types.KindU8:   reflect.TypeFor[uint8](),
	types.KindI16:  reflect.TypeFor[int16](),
	types.KindU16:  reflect.TypeFor[uint16](),
	types.KindI32:  reflect.TypeFor[int32](),
	types.KindU32:  reflect.TypeFor[uint32](),
	types.KindI64:  reflect.TypeFor[int64](),
	types.KindU64:  reflect.TypeFor[uint64](),
	types.KindF32:  reflect.TypeFor[float32](),
	types.KindF64:  reflect.TypeFor[float64](),
}

// GoType returns the dynamic type Unpack produces for d, or nil for a nil
// descriptor.
func GoType(d types.Descriptor) reflect.Type {
	switch d := d.(type) {
	case nil:
		return nil
	case *types.Primitive:
		return primitiveGoTypes[d.Kind()]
	case *types.FixedPoint:
		return reflect.TypeFor[types.FixedPointValue]()
	case *types.Array:
		return reflect.TypeFor[[]any]()
	case *types.Cluster:
		return reflect.TypeFor[map[string]any]()
	case *types.Opaque:
		return reflect.TypeFor[string]()
	}
	return nil
}
