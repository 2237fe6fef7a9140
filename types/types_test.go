package types

import (
	"errors"
	"math/big"
	"testing"

	fpgaerrors "github.com/wippyai/fpga-runtime/errors"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBool, "bool"},
		{KindI8, "i8"},
		{KindU64, "u64"},
		{KindF32, "f32"},
		{KindFixedPoint, "fxp"},
		{KindArray, "array"},
		{KindCluster, "cluster"},
		{KindOpaque, "opaque"},
		{Kind(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindClassification(t *testing.T) {
	for k := KindBool; k <= KindF64; k++ {
		if !k.IsPrimitive() {
			t.Errorf("%v should be primitive", k)
		}
		if k.IsComposite() {
			t.Errorf("%v should not be composite", k)
		}
	}
	for _, k := range []Kind{KindFixedPoint, KindArray, KindCluster} {
		if k.IsPrimitive() || !k.IsComposite() {
			t.Errorf("%v should be composite", k)
		}
	}
	if KindOpaque.IsPrimitive() || KindOpaque.IsComposite() {
		t.Error("opaque is neither primitive nor composite")
	}
}

func TestPrimitiveBitWidth(t *testing.T) {
	tests := []struct {
		d    *Primitive
		bits int
	}{
		{Bool, 1},
		{I8, 8}, {U8, 8},
		{I16, 16}, {U16, 16},
		{I32, 32}, {U32, 32},
		{I64, 64}, {U64, 64},
		{F32, 32}, {F64, 64},
	}
	for _, tt := range tests {
		if got := tt.d.BitWidth(); got != tt.bits {
			t.Errorf("%v.BitWidth() = %d, want %d", tt.d, got, tt.bits)
		}
	}
	if !I16.Signed() || U16.Signed() {
		t.Error("signedness wrong for 16-bit integers")
	}
	if !F64.IsFloat() || I64.IsFloat() {
		t.Error("float classification wrong")
	}
}

func TestNewPrimitiveRejectsComposite(t *testing.T) {
	if _, err := NewPrimitive(KindCluster); err == nil {
		t.Fatal("expected error for cluster kind")
	}
	p, err := NewPrimitive(KindU32)
	if err != nil || p != U32 {
		t.Fatalf("NewPrimitive(u32) = %v, %v", p, err)
	}
}

func TestFixedPointDerived(t *testing.T) {
	t.Run("signed_16_8", func(t *testing.T) {
		fx, err := NewFixedPoint(true, 16, 8, false)
		if err != nil {
			t.Fatal(err)
		}
		if want := big.NewRat(1, 256); fx.Delta().Cmp(want) != 0 {
			t.Errorf("delta = %v, want %v", fx.Delta(), want)
		}
		if want := big.NewRat(-128, 1); fx.Min().Cmp(want) != 0 {
			t.Errorf("min = %v, want %v", fx.Min(), want)
		}
		if want := big.NewRat(32767, 256); fx.Max().Cmp(want) != 0 {
			t.Errorf("max = %v, want %v", fx.Max(), want)
		}
		if fx.BitWidth() != 16 {
			t.Errorf("bit width = %d, want 16", fx.BitWidth())
		}
	})

	t.Run("unsigned_with_overflow", func(t *testing.T) {
		fx, err := NewFixedPoint(false, 12, 4, true)
		if err != nil {
			t.Fatal(err)
		}
		if fx.BitWidth() != 13 {
			t.Errorf("bit width = %d, want 13", fx.BitWidth())
		}
		if fx.Min().Sign() != 0 {
			t.Errorf("min = %v, want 0", fx.Min())
		}
		if want := big.NewRat(4095, 256); fx.Max().Cmp(want) != 0 {
			t.Errorf("max = %v, want %v", fx.Max(), want)
		}
	})

	t.Run("integer_word_length_exceeds_word_length", func(t *testing.T) {
		fx, err := NewFixedPoint(false, 8, 10, false)
		if err != nil {
			t.Fatal(err)
		}
		if want := big.NewRat(4, 1); fx.Delta().Cmp(want) != 0 {
			t.Errorf("delta = %v, want 4", fx.Delta())
		}
	})

	t.Run("word_length_bounds", func(t *testing.T) {
		for _, wl := range []int{0, -1, 65} {
			_, err := NewFixedPoint(true, wl, 0, false)
			if !fpgaerrors.IsKind(err, fpgaerrors.KindUnsupportedType) {
				t.Errorf("word length %d: err = %v, want unsupported_type", wl, err)
			}
		}
	})

	t.Run("accessors_return_copies", func(t *testing.T) {
		fx, _ := NewFixedPoint(true, 16, 8, false)
		fx.Delta().SetInt64(99)
		if fx.Delta().Cmp(big.NewRat(1, 256)) != 0 {
			t.Error("Delta leaked internal state")
		}
	})
}

func TestFixedPointClamp(t *testing.T) {
	fx, _ := NewFixedPoint(true, 8, 4, false)
	tests := []struct {
		in, want *big.Rat
	}{
		{big.NewRat(100, 1), fx.Max()},
		{big.NewRat(-100, 1), fx.Min()},
		{big.NewRat(3, 2), big.NewRat(3, 2)},
	}
	for _, tt := range tests {
		if got := fx.Clamp(tt.in); got.Cmp(tt.want) != 0 {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFixedPointValue(t *testing.T) {
	t.Run("from_rat_is_exact", func(t *testing.T) {
		v := FixedPointFromRat(big.NewRat(1, 256), false)
		if got := v.String(); got != "0.00390625" {
			t.Errorf("String() = %q", got)
		}
		r, err := v.Rat()
		if err != nil {
			t.Fatal(err)
		}
		if r.Cmp(big.NewRat(1, 256)) != 0 {
			t.Errorf("Rat() = %v", r)
		}
	})

	t.Run("negative", func(t *testing.T) {
		v := FixedPointFromRat(big.NewRat(-5, 4), true)
		if got := v.String(); got != "-1.25 (overflow)" {
			t.Errorf("String() = %q", got)
		}
		if v.Float64() != -1.25 {
			t.Errorf("Float64() = %v", v.Float64())
		}
	})

	t.Run("parse", func(t *testing.T) {
		v, err := ParseFixedPointValue("3.5e-1")
		if err != nil {
			t.Fatal(err)
		}
		want := FixedPointFromRat(big.NewRat(7, 20), false)
		if !v.Equal(want) {
			t.Errorf("parsed %v, want %v", v, want)
		}
		if _, err := ParseFixedPointValue("abc"); err == nil {
			t.Error("expected parse error")
		}
		if _, err := ParseFixedPointValue("NaN"); err == nil {
			t.Error("expected error for NaN")
		}
	})

	t.Run("float", func(t *testing.T) {
		v, err := NewFixedPointValue(0.75)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != "0.75" {
			t.Errorf("String() = %q", v.String())
		}
	})

	t.Run("non_dyadic_rounds", func(t *testing.T) {
		huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(200000), nil)
		for i, want := range []*big.Rat{
			big.NewRat(1, 3),
			big.NewRat(-2, 7),
			new(big.Rat).SetFrac(huge, big.NewInt(3)),
		} {
			r, err := FixedPointFromRat(want, false).Rat()
			if err != nil {
				t.Fatalf("case %d: %v", i, err)
			}
			diff := new(big.Rat).Sub(r, want)
			rel := new(big.Rat).Abs(new(big.Rat).Quo(diff, want))
			if rel.Cmp(big.NewRat(1, 1e15)) > 0 {
				t.Errorf("case %d: relative error %v too large", i, rel.FloatString(20))
			}
		}
	})

	t.Run("zero_value", func(t *testing.T) {
		var v FixedPointValue
		if v.Float64() != 0 || v.String() != "0" {
			t.Errorf("zero value = %v", v)
		}
		if !v.Equal(FixedPointFromRat(new(big.Rat), false)) {
			t.Error("zero value should equal 0")
		}
	})
}

func TestArrayAndCluster(t *testing.T) {
	arr, err := NewArray(I16, 5)
	if err != nil {
		t.Fatal(err)
	}
	if arr.BitWidth() != 80 || arr.Len() != 5 || arr.Elem() != I16 {
		t.Errorf("array = %v bits=%d", arr, arr.BitWidth())
	}
	if _, err := NewArray(I16, -1); err == nil {
		t.Error("expected error for negative size")
	}

	// 2^61 bytes of payload does not fit an int bit count.
	if _, err := NewArray(U8, 1<<61); !fpgaerrors.IsKind(err, fpgaerrors.KindUnsupportedType) {
		t.Errorf("NewArray(u8, 2^61) err = %v, want unsupported_type", err)
	}
	big1, err := NewArray(U8, 1<<58)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewCluster(
		Field{Name: "a", Type: big1},
		Field{Name: "b", Type: big1},
		Field{Name: "c", Type: big1},
		Field{Name: "d", Type: big1},
	)
	if !fpgaerrors.IsKind(err, fpgaerrors.KindUnsupportedType) {
		t.Errorf("oversized cluster err = %v, want unsupported_type", err)
	}

	fx, _ := NewFixedPoint(true, 16, 8, true)
	c, err := NewCluster(
		Field{Name: "status", Type: Bool},
		Field{Name: "code", Type: I32},
		Field{Name: "source", Type: NewOpaque()},
		Field{Name: "gain", Type: fx},
	)
	if err != nil {
		t.Fatal(err)
	}
	if c.BitWidth() != 1+32+0+17 {
		t.Errorf("cluster bit width = %d", c.BitWidth())
	}
	if _, ok := c.Field("source"); ok {
		t.Error("opaque field should not be keyed")
	}
	if d, ok := c.Field("code"); !ok || d != I32 {
		t.Error("code field lookup failed")
	}
	if c.NumFields() != 4 {
		t.Errorf("NumFields() = %d", c.NumFields())
	}
}

func TestClusterDuplicateFields(t *testing.T) {
	_, err := NewCluster(Field{Name: "a", Type: U8}, Field{Name: "a", Type: U16})
	var fe *fpgaerrors.Error
	if !errors.As(err, &fe) || fe.Kind != fpgaerrors.KindDuplicateField {
		t.Fatalf("err = %v, want duplicate_field", err)
	}

	_, err = NewCluster(
		Field{Name: "", Type: NewOpaque()},
		Field{Name: "", Type: NewOpaque()},
		Field{Name: "x", Type: U8},
	)
	if err != nil {
		t.Fatalf("opaque fields may share names: %v", err)
	}
}

func TestDescriptorString(t *testing.T) {
	fx, _ := NewFixedPoint(false, 12, 4, true)
	arr, _ := NewArray(fx, 3)
	inner, _ := NewCluster(Field{Name: "x", Type: I8})
	c, _ := NewCluster(
		Field{Name: "samples", Type: arr},
		Field{Name: "my field", Type: inner},
		Field{Name: "", Type: NewOpaque()},
	)
	want := `cluster{samples: [3]fxp<u,12,4,overflow>, "my field": cluster{x: i8}, "": string}`
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		node *Node
		want string
		bits int
	}{
		{&Node{Tag: TagBoolean}, "bool", 1},
		{&Node{Tag: TagSGL}, "f32", 32},
		{&Node{Tag: TagDBL}, "f64", 64},
		{&Node{Tag: TagEnumU16}, "u16", 16},
		{&Node{Tag: TagEnumI32}, "i32", 32},
		{&Node{Tag: TagString}, "string", 0},
		{&Node{Tag: TagFXP, Signed: true, WordLength: 16, IntegerWordLength: 8}, "fxp<s,16,8>", 16},
		{&Node{Tag: TagArray, Size: 4, Element: &Node{Tag: TagU8}}, "[4]u8", 32},
		{
			&Node{Tag: TagCluster, Fields: []*Node{
				{Tag: TagBoolean, Name: "status"},
				{Tag: TagI32, Name: "code"},
				{Tag: TagString, Name: "source"},
			}},
			"cluster{status: bool, code: i32, source: string}",
			33,
		},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, err := Build(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if d.String() != tt.want {
				t.Errorf("String() = %q, want %q", d.String(), tt.want)
			}
			if d.BitWidth() != tt.bits {
				t.Errorf("BitWidth() = %d, want %d", d.BitWidth(), tt.bits)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("complex_fixed_point", func(t *testing.T) {
		_, err := Build(&Node{Tag: TagCFXP})
		if !fpgaerrors.IsKind(err, fpgaerrors.KindUnsupportedType) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("unknown_tag_nested", func(t *testing.T) {
		_, err := Build(&Node{Tag: TagCluster, Fields: []*Node{
			{Tag: TagU8, Name: "ok"},
			{Tag: TagArray, Name: "bad", Size: 2, Element: &Node{Tag: "Waveform"}},
		}})
		var fe *fpgaerrors.Error
		if !errors.As(err, &fe) {
			t.Fatalf("err = %v", err)
		}
		if fe.Kind != fpgaerrors.KindUnsupportedType {
			t.Errorf("kind = %v", fe.Kind)
		}
		if got := fpgaerrors.JoinPath(fe.Path); got != "bad[]" {
			t.Errorf("path = %q, want bad[]", got)
		}
	})

	t.Run("duplicate_field_path", func(t *testing.T) {
		_, err := Build(&Node{Tag: TagCluster, Fields: []*Node{
			{Tag: TagCluster, Name: "inner", Fields: []*Node{
				{Tag: TagU8, Name: "a"},
				{Tag: TagU8, Name: "a"},
			}},
		}})
		var fe *fpgaerrors.Error
		if !errors.As(err, &fe) || fe.Kind != fpgaerrors.KindDuplicateField {
			t.Fatalf("err = %v", err)
		}
		if got := fpgaerrors.JoinPath(fe.Path); got != "inner" {
			t.Errorf("path = %q, want inner", got)
		}
	})

	t.Run("missing_element", func(t *testing.T) {
		if _, err := Build(&Node{Tag: TagArray, Size: 1}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if _, err := Build(nil); err == nil {
			t.Error("expected error")
		}
	})
}
