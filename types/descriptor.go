package types

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/fpga-runtime/errors"
)

// Descriptor is a hardware data type with a fixed bit width.
//
// The set of implementations is closed: *Primitive, *FixedPoint, *Array,
// *Cluster and *Opaque. Descriptors are immutable once constructed and can be
// shared between goroutines without locking.
type Descriptor interface {
	Kind() Kind
	BitWidth() int
	String() string

	descriptor()
}

// Primitive is a bool, integer or IEEE float.
type Primitive struct {
	kind Kind
}

var (
	Bool = &Primitive{kind: KindBool}
	I8   = &Primitive{kind: KindI8}
	U8   = &Primitive{kind: KindU8}
	I16  = &Primitive{kind: KindI16}
	U16  = &Primitive{kind: KindU16}
	I32  = &Primitive{kind: KindI32}
	U32  = &Primitive{kind: KindU32}
	I64  = &Primitive{kind: KindI64}
	U64  = &Primitive{kind: KindU64}
	F32  = &Primitive{kind: KindF32}
	F64  = &Primitive{kind: KindF64}
)

// NewPrimitive returns the shared descriptor for a primitive kind.
func NewPrimitive(kind Kind) (*Primitive, error) {
	switch kind {
	case KindBool:
		return Bool, nil
	case KindI8:
		return I8, nil
	case KindU8:
		return U8, nil
	case KindI16:
		return I16, nil
	case KindU16:
		return U16, nil
	case KindI32:
		return I32, nil
	case KindU32:
		return U32, nil
	case KindI64:
		return I64, nil
	case KindU64:
		return U64, nil
	case KindF32:
		return F32, nil
	case KindF64:
		return F64, nil
	}
	return nil, errors.InvalidInput(errors.PhaseBuild, "not a primitive kind: "+kind.String())
}

func (p *Primitive) Kind() Kind { return p.kind }
func (p *Primitive) BitWidth() int { return kindBits[p.kind] }
func (p *Primitive) String() string { return p.kind.String() }
func (p *Primitive) Signed() bool { return p.kind.IsSigned() }
func (p *Primitive) IsFloat() bool { return p.kind.IsFloat() }
func (p *Primitive) descriptor() {}

// Array is a fixed-count sequence of one element type.
type Array struct {
	elem     Descriptor
	count    int
	bitWidth int
}

// NewArray builds an array descriptor. count may be zero.
func NewArray(elem Descriptor, count int) (*Array, error) {
	if elem == nil {
		return nil, errors.InvalidInput(errors.PhaseBuild, "array element type is nil")
	}
	if count < 0 {
		return nil, errors.New(errors.PhaseBuild, errors.KindInvalidData).
			HWType("array").
			Value(count).
			Detail("negative array size %d", count).
			Build()
	}
	if count > 0 && elem.BitWidth() > math.MaxInt/count {
		return nil, tooWide("array", count)
	}
	return &Array{
		elem:     elem,
		count:    count,
		bitWidth: elem.BitWidth() * count,
	}, nil
}

// tooWide reports a composite whose bit width does not fit an int.
func tooWide(hwType string, at int) *errors.Error {
	return errors.New(errors.PhaseBuild, errors.KindUnsupportedType).
		HWType(hwType).
		Value(at).
		Detail("%s bit width overflows int", hwType).
		Build()
}

func (a *Array) Kind() Kind { return KindArray }
func (a *Array) BitWidth() int { return a.bitWidth }
func (a *Array) Elem() Descriptor { return a.elem }
func (a *Array) Len() int { return a.count }
func (a *Array) descriptor() {}

func (a *Array) String() string {
	return "[" + strconv.Itoa(a.count) + "]" + a.elem.String()
}

// Field is one member of a cluster. Opaque fields are positional only and
// never appear in the keyed host value.
type Field struct {
	Type Descriptor
	Name string
}

// Cluster is an ordered record of fields. The first field occupies the
// lowest bit positions of the packed pattern.
type Cluster struct {
	index    map[string]int
	fields   []Field
	bitWidth int
}

// NewCluster builds a cluster descriptor. Two non-opaque fields with the
// same name are a DuplicateField error.
func NewCluster(fields ...Field) (*Cluster, error) {
	c := &Cluster{
		index:  make(map[string]int, len(fields)),
		fields: make([]Field, len(fields)),
	}
	for i, f := range fields {
		if f.Type == nil {
			return nil, errors.New(errors.PhaseBuild, errors.KindInvalidData).
				Path(f.Name).
				Detail("field %d has no type", i).
				Build()
		}
		c.fields[i] = f
		if w := f.Type.BitWidth(); c.bitWidth > math.MaxInt-w {
			return nil, tooWide("cluster", i)
		}
		c.bitWidth += f.Type.BitWidth()
		if f.Type.Kind() == KindOpaque {
			continue
		}
		if _, dup := c.index[f.Name]; dup {
			return nil, errors.DuplicateField(errors.PhaseBuild, nil, f.Name)
		}
		c.index[f.Name] = i
	}
	return c, nil
}

func (c *Cluster) Kind() Kind { return KindCluster }
func (c *Cluster) BitWidth() int { return c.bitWidth }
func (c *Cluster) NumFields() int { return len(c.fields) }
func (c *Cluster) descriptor() {}

// Fields returns a copy of the fields in declaration order.
func (c *Cluster) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Field looks up a keyed (non-opaque) field by name.
func (c *Cluster) Field(name string) (Descriptor, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.fields[i].Type, true
}

func (c *Cluster) String() string {
	var b strings.Builder
	b.WriteString("cluster{")
	for i, f := range c.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fieldName(f.Name))
		b.WriteString(": ")
		b.WriteString(f.Type.String())
	}
	b.WriteByte('}')
	return b.String()
}

func fieldName(name string) string {
	if isIdent(name) {
		return name
	}
	return strconv.Quote(name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Opaque stands in for hardware types with no fixed-width binary form,
// such as the text fields of error clusters. It occupies zero bits.
type Opaque struct{}

var opaque = &Opaque{}

func NewOpaque() *Opaque { return opaque }

func (o *Opaque) Kind() Kind { return KindOpaque }
func (o *Opaque) BitWidth() int { return 0 }
func (o *Opaque) String() string { return "string" }
func (o *Opaque) descriptor() {}
