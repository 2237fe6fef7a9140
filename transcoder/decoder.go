package transcoder

import (
	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/transcoder/internal/bits"
	"github.com/wippyai/fpga-runtime/types"
)

// Unpack decodes the canonical pattern of d from buf. A short buffer is not
// an error: missing bits read as zero.
func Unpack(d types.Descriptor, buf []byte) (any, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhaseUnpack, "nil descriptor")
	}
	dec := decoder{r: bits.NewReader(buf)}
	return dec.decode(d, nil)
}

type decoder struct {
	r *bits.Reader
}

func (d *decoder) decode(t types.Descriptor, path []string) (any, error) {
	switch t := t.(type) {
	case *types.Primitive:
		return d.decodePrimitive(t), nil
	case *types.FixedPoint:
		return d.decodeFixedPoint(t), nil
	case *types.Array:
		return d.decodeArray(t, path)
	case *types.Cluster:
		return d.decodeCluster(t, path)
	case *types.Opaque:
		return "", nil
	default:
		return nil, errors.UnsupportedType(errors.PhaseUnpack, path, t.String())
	}
}

func (d *decoder) decodePrimitive(p *types.Primitive) any {
	switch p.Kind() {
	case types.KindBool:
		return d.r.ReadBool()
	case types.KindI8:
		return int8(d.r.ReadInt(8))
	case types.KindU8:
		return uint8(d.r.ReadUint(8))
	case types.KindI16:
		return int16(d.r.ReadInt(16))
	case types.KindU16:
		return uint16(d.r.ReadUint(16))
	case types.KindI32:
		return int32(d.r.ReadInt(32))
	case types.KindU32:
		return uint32(d.r.ReadUint(32))
	case types.KindI64:
		return d.r.ReadInt(64)
	case types.KindU64:
		return d.r.ReadUint(64)
	case types.KindF32:
		return d.r.ReadFloat32()
	default:
		return d.r.ReadFloat64()
	}
}

func (d *decoder) decodeFixedPoint(f *types.FixedPoint) types.FixedPointValue {
	var overflow bool
	if f.HasOverflowFlag() {
		overflow = d.r.ReadBool()
	}
	v := d.r.ReadFixedPoint(f.WordLength(), f.Signed(), f.Delta())
	return types.FixedPointFromRat(v, overflow)
}

// decodeArray reads in pattern order and stores back to front.
func (d *decoder) decodeArray(a *types.Array, path []string) ([]any, error) {
	n := a.Len()
	vals := make([]any, n)
	for i := 0; i < n; i++ {
		idx := n - 1 - i
		v, err := d.decode(a.Elem(), append(path, errors.Index(idx)))
		if err != nil {
			return nil, err
		}
		vals[idx] = v
	}
	return vals, nil
}

func (d *decoder) decodeCluster(c *types.Cluster, path []string) (map[string]any, error) {
	out := make(map[string]any, c.NumFields())
	for _, f := range c.Fields() {
		v, err := d.decode(f.Type, append(path, f.Name))
		if err != nil {
			return nil, err
		}
		if f.Type.Kind() == types.KindOpaque {
			continue
		}
		out[f.Name] = v
	}
	return out, nil
}
