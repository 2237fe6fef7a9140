// Package typeexpr parses the compact type notation that descriptors render
// with String:
//
//	u16
//	[8]i16
//	fxp<s,16,8>
//	fxp<u,12,4,overflow>
//	cluster{status: bool, code: i32, source: string}
//	cluster{"gain (dB)": fxp<s,24,8>, taps: [4]u8}
//
// Primitive names are bool, i8..i64, u8..u64, f32 and f64; sgl, dbl and
// boolean are accepted as aliases and string denotes an opaque field.
package typeexpr

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[\[\]{}<>:,]`},
})

type typeExpr struct {
	Array   *arrayExpr   `  @@`
	Cluster *clusterExpr `| @@`
	Fxp     *fxpExpr     `| @@`
	Name    string       `| @Ident`
}

type arrayExpr struct {
	Size int       `"[" @Int "]"`
	Elem *typeExpr `@@`
}

type clusterExpr struct {
	Fields []*fieldExpr `"cluster" "{" ( @@ ( "," @@ )* )? "}"`
}

type fieldExpr struct {
	Name string    `( @Ident | @String ) ":"`
	Type *typeExpr `@@`
}

type fxpExpr struct {
	Sign     string `"fxp" "<" @Ident ","`
	Word     int    `@Int ","`
	Integer  int    `@Int`
	Overflow string `( "," @Ident )? ">"`
}

var parser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

var primitiveNames = map[string]string{
	"bool":    types.TagBoolean,
	"boolean": types.TagBoolean,
	"i8":      types.TagI8,
	"u8":      types.TagU8,
	"i16":     types.TagI16,
	"u16":     types.TagU16,
	"i32":     types.TagI32,
	"u32":     types.TagU32,
	"i64":     types.TagI64,
	"u64":     types.TagU64,
	"f32":     types.TagSGL,
	"sgl":     types.TagSGL,
	"f64":     types.TagDBL,
	"dbl":     types.TagDBL,
	"string":  types.TagString,
}

// Parse converts a type expression to a type tree. Unknown primitive names
// are kept as tags so that types.Build reports them as unsupported.
func Parse(s string) (*types.Node, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "empty type expression")
	}
	expr, err := parser.ParseString("", s)
	if err != nil {
		return nil, errors.ParseFailed("type expression", err)
	}
	return expr.node()
}

// Descriptor parses and builds in one step.
func Descriptor(s string) (types.Descriptor, error) {
	n, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return types.Build(n)
}

// MustDescriptor is like Descriptor but panics on error. Intended for
// package-level tables and tests.
func MustDescriptor(s string) types.Descriptor {
	d, err := Descriptor(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (t *typeExpr) node() (*types.Node, error) {
	switch {
	case t.Array != nil:
		elem, err := t.Array.Elem.node()
		if err != nil {
			return nil, err
		}
		return &types.Node{Tag: types.TagArray, Size: t.Array.Size, Element: elem}, nil

	case t.Cluster != nil:
		n := &types.Node{Tag: types.TagCluster}
		for _, f := range t.Cluster.Fields {
			child, err := f.Type.node()
			if err != nil {
				return nil, err
			}
			child.Name = f.Name
			n.Fields = append(n.Fields, child)
		}
		return n, nil

	case t.Fxp != nil:
		return t.Fxp.node()
	}

	if t.Name == "" {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "missing type")
	}
	if tag, ok := primitiveNames[strings.ToLower(t.Name)]; ok {
		return &types.Node{Tag: tag}, nil
	}
	return &types.Node{Tag: t.Name}, nil
}

func (f *fxpExpr) node() (*types.Node, error) {
	n := &types.Node{
		Tag:               types.TagFXP,
		WordLength:        f.Word,
		IntegerWordLength: f.Integer,
	}
	switch f.Sign {
	case "s":
		n.Signed = true
	case "u":
	default:
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(f.Sign).
			Detail("fixed-point sign must be s or u, got %q", f.Sign).
			Build()
	}
	switch f.Overflow {
	case "overflow":
		n.IncludeOverflowStatus = true
	case "":
	default:
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Value(f.Overflow).
			Detail("expected \"overflow\", got %q", f.Overflow).
			Build()
	}
	return n, nil
}
