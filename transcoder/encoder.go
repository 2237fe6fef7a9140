package transcoder

import (
	stderrors "errors"
	"math"
	"reflect"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/transcoder/internal/bits"
	"github.com/wippyai/fpga-runtime/transcoder/internal/coerce"
	"github.com/wippyai/fpga-runtime/types"
)

var typeName = coerce.TypeName

// Pack encodes value into the canonical LSB-first pattern of d. The result
// is ceil(d.BitWidth()/8) bytes long.
func Pack(d types.Descriptor, value any) ([]byte, error) {
	if d == nil {
		return nil, errors.InvalidInput(errors.PhasePack, "nil descriptor")
	}
	e := encoder{w: bits.NewWriter(d.BitWidth())}
	if err := e.encode(d, value, nil); err != nil {
		return nil, err
	}
	return e.w.Bytes(), nil
}

type encoder struct {
	w *bits.Writer
}

func (e *encoder) encode(d types.Descriptor, value any, path []string) error {
	switch t := d.(type) {
	case *types.Primitive:
		return e.encodePrimitive(t, value, path)
	case *types.FixedPoint:
		return e.encodeFixedPoint(t, value, path)
	case *types.Array:
		return e.encodeArray(t, value, path)
	case *types.Cluster:
		return e.encodeCluster(t, value, path)
	case *types.Opaque:
		return nil
	default:
		return errors.UnsupportedType(errors.PhasePack, path, d.String())
	}
}

func (e *encoder) encodePrimitive(p *types.Primitive, value any, path []string) error {
	n := p.BitWidth()

	switch {
	case p.Kind() == types.KindBool:
		v, ok := coerce.ToBool(value)
		if !ok {
			return errors.TypeMismatch(errors.PhasePack, path, typeName(value), p.String())
		}
		e.w.WriteBool(v)

	case p.IsFloat():
		v, ok := coerce.ToFloat64(value)
		if !ok {
			return errors.TypeMismatch(errors.PhasePack, path, typeName(value), p.String())
		}
		if p.Kind() == types.KindF32 {
			if !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
				return errors.Overflow(errors.PhasePack, path, value, p.String())
			}
			e.w.WriteFloat32(float32(v))
		} else {
			e.w.WriteFloat64(v)
		}

	case p.Signed():
		v, ok := coerce.ToInt64(value)
		if !ok {
			if _, isUint := coerce.ToUint64(value); isUint {
				return errors.Overflow(errors.PhasePack, path, value, p.String())
			}
			return errors.TypeMismatch(errors.PhasePack, path, typeName(value), p.String())
		}
		if !coerce.FitsSigned(v, n) {
			return errors.Overflow(errors.PhasePack, path, value, p.String())
		}
		e.w.WriteInt(v, n)

	default:
		v, ok := coerce.ToUint64(value)
		if !ok {
			if _, isInt := coerce.ToInt64(value); isInt {
				return errors.Overflow(errors.PhasePack, path, value, p.String())
			}
			return errors.TypeMismatch(errors.PhasePack, path, typeName(value), p.String())
		}
		if !coerce.FitsUnsigned(v, n) {
			return errors.Overflow(errors.PhasePack, path, value, p.String())
		}
		e.w.WriteUint(v, n)
	}
	return nil
}

// encodeFixedPoint clamps silently; out-of-range input is not an error.
func (e *encoder) encodeFixedPoint(f *types.FixedPoint, value any, path []string) error {
	r, overflow, err := coerce.ToRat(value)
	if stderrors.Is(err, coerce.ErrNotNumeric) {
		return errors.TypeMismatch(errors.PhasePack, path, typeName(value), f.String())
	}
	if err != nil {
		return errors.New(errors.PhasePack, errors.KindInvalidInput).
			Path(clone(path)...).
			GoType(typeName(value)).
			HWType(f.String()).
			Value(value).
			Cause(err).
			Detail("not a finite number").
			Build()
	}
	if f.HasOverflowFlag() {
		e.w.WriteBool(overflow)
	}
	e.w.WriteFixedPoint(f.Clamp(r), f.WordLength(), f.Delta())
	return nil
}

func (e *encoder) encodeArray(a *types.Array, value any, path []string) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return errors.TypeMismatch(errors.PhasePack, path, typeName(value), a.String())
	}
	if rv.Len() != a.Len() {
		return errors.ArrayLengthMismatch(errors.PhasePack, path, a.Len(), rv.Len())
	}

	elem := a.Elem()
	for i := a.Len() - 1; i >= 0; i-- {
		if err := e.encode(elem, rv.Index(i).Interface(), append(path, errors.Index(i))); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeCluster(c *types.Cluster, value any, path []string) error {
	lookup, ok := fieldLookup(value)
	if !ok {
		return errors.TypeMismatch(errors.PhasePack, path, typeName(value), c.String())
	}

	for _, f := range c.Fields() {
		if f.Type.Kind() == types.KindOpaque {
			continue
		}
		v, found := lookup(f.Name)
		if !found {
			return errors.FieldMissing(errors.PhasePack, clone(path), f.Name)
		}
		if err := e.encode(f.Type, v, append(path, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

// fieldLookup adapts map[string]any and any other string-keyed map.
func fieldLookup(value any) (func(string) (any, bool), bool) {
	if m, ok := value.(map[string]any); ok {
		return func(name string) (any, bool) {
			v, found := m[name]
			return v, found
		}, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keyType := rv.Type().Key()
	return func(name string) (any, bool) {
		v := rv.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	}, true
}

func clone(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	out := make([]string, len(path))
	copy(out, path)
	return out
}
