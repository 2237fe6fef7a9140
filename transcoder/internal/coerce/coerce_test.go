package coerce

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

func TestToUint64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   uint64
		wantOK bool
	}{
		// Direct uint64
		{uint64(0), "uint64 zero", 0, true},
		{uint64(math.MaxUint64), "uint64 max", math.MaxUint64, true},

		// float64 (JSON numbers)
		{float64(1000), "float64 positive", 1000, true},
		{float64(-1), "float64 negative", 0, false},
		{float64(1.5), "float64 fractional", 0, false},
		{float64(1 << 63), "float64 2^63", 1 << 63, true},
		{math.Ldexp(1, 64), "float64 2^64", 0, false},
		{math.NaN(), "float64 NaN", 0, false},

		// json.Number
		{json.Number("18446744073709551615"), "json max", math.MaxUint64, true},
		{json.Number("42.0"), "json float form", 42, true},
		{json.Number("-3"), "json negative", 0, false},

		// signed
		{int(100), "int positive", 100, true},
		{int8(-1), "int8 negative", 0, false},
		{int64(-1), "int64 negative", 0, false},

		// float32
		{float32(100), "float32 positive", 100, true},
		{float32(-1), "float32 negative", 0, false},

		// Invalid
		{"x", "string", 0, false},
		{true, "bool", 0, false},
		{nil, "nil", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToUint64(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ToUint64(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToUint64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   int64
		wantOK bool
	}{
		// Direct int64
		{int64(math.MinInt64), "int64 min", math.MinInt64, true},
		{int64(-1 << 40), "int64 negative", -1 << 40, true},

		// float64
		{float64(-1000), "float64 negative", -1000, true},
		{float64(1.5), "float64 fractional", 0, false},
		{float64(-(1 << 63)), "float64 -2^63", math.MinInt64, true},
		{float64(1 << 63), "float64 2^63", 0, false},

		// unsigned
		{uint32(math.MaxUint32), "uint32", math.MaxUint32, true},
		{uint64(math.MaxInt64), "uint64 max int64", math.MaxInt64, true},
		{uint64(math.MaxInt64 + 1), "uint64 too large", 0, false},

		// json.Number
		{json.Number("-128"), "json negative", -128, true},
		{json.Number("1e3"), "json exponent", 1000, true},
		{json.Number("0.25"), "json fractional", 0, false},

		// Invalid
		{"y", "string", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ToInt64(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToInt64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   float64
		wantOK bool
	}{
		{float64(1.5), "float64", 1.5, true},
		{float32(0.25), "float32", 0.25, true},
		{int(-7), "int", -7, true},
		{uint8(200), "uint8", 200, true},
		{json.Number("2.5e1"), "json", 25, true},
		{json.Number("abc"), "json invalid", 0, false},
		{"1.0", "string", 0, false},
		{false, "bool", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ToFloat64(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToFloat64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToBool(t *testing.T) {
	if v, ok := ToBool(true); !ok || !v {
		t.Error("ToBool(true) failed")
	}
	if _, ok := ToBool(1); ok {
		t.Error("ToBool(1) should fail")
	}
}

func TestToRat(t *testing.T) {
	dec, _, _ := apd.NewFromString("-0.125")
	tests := []struct {
		input    any
		name     string
		want     *big.Rat
		overflow bool
		fail     string // "", "type" or "value"
	}{
		{types.FixedPointFromRat(big.NewRat(3, 4), true), "fixed-point value", big.NewRat(3, 4), true, ""},
		{dec, "apd pointer", big.NewRat(-1, 8), false, ""},
		{*dec, "apd value", big.NewRat(-1, 8), false, ""},
		{big.NewRat(5, 2), "rat", big.NewRat(5, 2), false, ""},
		{"1.5", "string", big.NewRat(3, 2), false, ""},
		{json.Number("0.1"), "json", big.NewRat(1, 10), false, ""},
		{float64(0.5), "float64", big.NewRat(1, 2), false, ""},
		{int(-3), "int", big.NewRat(-3, 1), false, ""},
		{uint64(math.MaxUint64), "uint64 max", new(big.Rat).SetUint64(math.MaxUint64), false, ""},
		{math.Inf(1), "inf", nil, false, "value"},
		{"nope", "bad string", nil, false, "value"},
		{"NaN", "nan string", nil, false, "value"},
		{(*big.Rat)(nil), "nil rat", nil, false, "value"},
		{[]int{1}, "slice", nil, false, "type"},
		{true, "bool", nil, false, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, overflow, err := ToRat(tt.input)
			switch tt.fail {
			case "type":
				if !stderrors.Is(err, ErrNotNumeric) {
					t.Fatalf("ToRat(%v) err = %v, want ErrNotNumeric", tt.input, err)
				}
				return
			case "value":
				if !errors.IsKind(err, errors.KindInvalidInput) {
					t.Fatalf("ToRat(%v) err = %v, want invalid_input", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToRat(%v): %v", tt.input, err)
			}
			if got.Cmp(tt.want) != 0 {
				t.Errorf("ToRat(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if overflow != tt.overflow {
				t.Errorf("ToRat(%v) overflow = %v, want %v", tt.input, overflow, tt.overflow)
			}
		})
	}
}

func TestToRatCopies(t *testing.T) {
	in := big.NewRat(1, 3)
	out, _, _ := ToRat(in)
	out.SetInt64(9)
	if in.Cmp(big.NewRat(1, 3)) != 0 {
		t.Error("ToRat aliased its input")
	}
}

func TestFits(t *testing.T) {
	signed := []struct {
		v    int64
		bits int
		want bool
	}{
		{127, 8, true},
		{128, 8, false},
		{-128, 8, true},
		{-129, 8, false},
		{0, 1, true},
		{-1, 1, true},
		{1, 1, false},
		{math.MinInt64, 64, true},
	}
	for _, tt := range signed {
		if got := FitsSigned(tt.v, tt.bits); got != tt.want {
			t.Errorf("FitsSigned(%d, %d) = %v, want %v", tt.v, tt.bits, got, tt.want)
		}
	}

	unsigned := []struct {
		v    uint64
		bits int
		want bool
	}{
		{255, 8, true},
		{256, 8, false},
		{1, 1, true},
		{2, 1, false},
		{math.MaxUint64, 64, true},
	}
	for _, tt := range unsigned {
		if got := FitsUnsigned(tt.v, tt.bits); got != tt.want {
			t.Errorf("FitsUnsigned(%d, %d) = %v, want %v", tt.v, tt.bits, got, tt.want)
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "int"},
		{"float64", 3.14, "float64"},
		{"slice", []any{1}, "[]interface {}"},
		{"map", map[string]any{}, "map[string]interface {}"},
		{"fixed-point", types.FixedPointValue{}, "types.FixedPointValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.input); got != tt.want {
				t.Errorf("TypeName(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
