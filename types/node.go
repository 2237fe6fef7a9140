package types

import (
	"github.com/wippyai/fpga-runtime/errors"
)

// Type tree tags as they appear in compiled hardware descriptor documents.
const (
	TagBoolean = "Boolean"
	TagI8      = "I8"
	TagU8      = "U8"
	TagI16     = "I16"
	TagU16     = "U16"
	TagI32     = "I32"
	TagU32     = "U32"
	TagI64     = "I64"
	TagU64     = "U64"
	TagSGL     = "SGL"
	TagDBL     = "DBL"
	TagFXP     = "FXP"
	TagCFXP    = "CFXP"
	TagArray   = "Array"
	TagCluster = "Cluster"
	TagString  = "String"
	TagEnumU8  = "EnumU8"
	TagEnumI8  = "EnumI8"
	TagEnumU16 = "EnumU16"
	TagEnumI16 = "EnumI16"
	TagEnumU32 = "EnumU32"
	TagEnumI32 = "EnumI32"
	TagEnumU64 = "EnumU64"
	TagEnumI64 = "EnumI64"
)

var primitiveTags = map[string]*Primitive{
	TagBoolean: Bool,
	TagI8:      I8,
	TagU8:      U8,
	TagI16:     I16,
	TagU16:     U16,
	TagI32:     I32,
	TagU32:     U32,
	TagI64:     I64,
	TagU64:     U64,
	TagSGL:     F32,
	TagDBL:     F64,
	TagEnumU8:  U8,
	TagEnumI8:  I8,
	TagEnumU16: U16,
	TagEnumI16: I16,
	TagEnumU32: U32,
	TagEnumI32: I32,
	TagEnumU64: U64,
	TagEnumI64: I64,
}

// Node is one element of the hardware type tree supplied by a descriptor
// document. Only the fields relevant to Tag are meaningful.
type Node struct {
	Element               *Node   `yaml:"element,omitempty"`
	Tag                   string  `yaml:"tag"`
	Name                  string  `yaml:"name,omitempty"`
	Fields                []*Node `yaml:"fields,omitempty"`
	WordLength            int     `yaml:"word_length,omitempty"`
	IntegerWordLength     int     `yaml:"integer_word_length,omitempty"`
	Size                  int     `yaml:"size,omitempty"`
	Signed                bool    `yaml:"signed,omitempty"`
	IncludeOverflowStatus bool    `yaml:"overflow,omitempty"`
}

// Build maps a type tree to its descriptor, depth first. Unknown tags and
// complex fixed-point fail with KindUnsupportedType.
func Build(n *Node) (Descriptor, error) {
	return build(n, nil)
}

func build(n *Node, path []string) (Descriptor, error) {
	if n == nil {
		return nil, errors.InvalidData(errors.PhaseBuild, path, "missing type node")
	}

	if p, ok := primitiveTags[n.Tag]; ok {
		return p, nil
	}

	switch n.Tag {
	case TagFXP:
		fx, err := NewFixedPoint(n.Signed, n.WordLength, n.IntegerWordLength, n.IncludeOverflowStatus)
		if err != nil {
			return nil, withPath(err, path)
		}
		return fx, nil

	case TagArray:
		elem, err := build(n.Element, append(clonePath(path), "[]"))
		if err != nil {
			return nil, err
		}
		arr, err := NewArray(elem, n.Size)
		if err != nil {
			return nil, withPath(err, path)
		}
		return arr, nil

	case TagCluster:
		fields := make([]Field, 0, len(n.Fields))
		for _, child := range n.Fields {
			if child == nil {
				return nil, errors.InvalidData(errors.PhaseBuild, path, "nil cluster field")
			}
			ft, err := build(child, append(clonePath(path), child.Name))
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: child.Name, Type: ft})
		}
		c, err := NewCluster(fields...)
		if err != nil {
			return nil, withPath(err, path)
		}
		return c, nil

	case TagString:
		return NewOpaque(), nil
	}

	return nil, errors.UnsupportedType(errors.PhaseBuild, path, n.Tag)
}

func withPath(err error, path []string) error {
	if e, ok := err.(*errors.Error); ok && len(path) > 0 {
		e.Path = append(clonePath(path), e.Path...)
	}
	return err
}

func clonePath(path []string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return out
}
