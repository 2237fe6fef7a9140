package types

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/wippyai/fpga-runtime/errors"
)

// MaxWordLength is the widest fixed-point payload the bit cursor can carry.
const MaxWordLength = 64

// FixedPoint is a scaled integer: value = integer * 2^(IntegerWordLength-WordLength).
// When the overflow flag is present it precedes the payload in the packed pattern.
type FixedPoint struct {
	delta             *big.Rat
	min               *big.Rat
	max               *big.Rat
	wordLength        int
	integerWordLength int
	bitWidth          int
	signed            bool
	overflow          bool
}

// NewFixedPoint builds a fixed-point descriptor. wordLength must be in
// 1..MaxWordLength; integerWordLength may be negative or exceed wordLength.
func NewFixedPoint(signed bool, wordLength, integerWordLength int, overflow bool) (*FixedPoint, error) {
	if wordLength < 1 || wordLength > MaxWordLength {
		return nil, errors.New(errors.PhaseBuild, errors.KindUnsupportedType).
			HWType("fxp").
			Value(wordLength).
			Detail("word length %d outside 1..%d", wordLength, MaxWordLength).
			Build()
	}

	delta := pow2(integerWordLength - wordLength)

	var lo, hi *big.Int
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), uint(wordLength-1))
		lo = new(big.Int).Neg(half)
		hi = new(big.Int).Sub(half, big.NewInt(1))
	} else {
		lo = new(big.Int)
		hi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(wordLength)), big.NewInt(1))
	}

	bitWidth := wordLength
	if overflow {
		bitWidth++
	}

	return &FixedPoint{
		delta:             delta,
		min:               new(big.Rat).Mul(new(big.Rat).SetInt(lo), delta),
		max:               new(big.Rat).Mul(new(big.Rat).SetInt(hi), delta),
		wordLength:        wordLength,
		integerWordLength: integerWordLength,
		bitWidth:          bitWidth,
		signed:            signed,
		overflow:          overflow,
	}, nil
}

func (f *FixedPoint) Kind() Kind { return KindFixedPoint }
func (f *FixedPoint) BitWidth() int { return f.bitWidth }
func (f *FixedPoint) Signed() bool { return f.signed }
func (f *FixedPoint) WordLength() int { return f.wordLength }
func (f *FixedPoint) IntegerWordLength() int { return f.integerWordLength }
func (f *FixedPoint) HasOverflowFlag() bool { return f.overflow }
func (f *FixedPoint) descriptor() {}

// Delta returns the value of one least significant bit.
func (f *FixedPoint) Delta() *big.Rat { return new(big.Rat).Set(f.delta) }

// Min returns the smallest representable value.
func (f *FixedPoint) Min() *big.Rat { return new(big.Rat).Set(f.min) }

// Max returns the largest representable value.
func (f *FixedPoint) Max() *big.Rat { return new(big.Rat).Set(f.max) }

// Clamp limits v to [Min, Max]. The result is a new value.
func (f *FixedPoint) Clamp(v *big.Rat) *big.Rat {
	switch {
	case v.Cmp(f.min) < 0:
		return f.Min()
	case v.Cmp(f.max) > 0:
		return f.Max()
	default:
		return new(big.Rat).Set(v)
	}
}

func (f *FixedPoint) String() string {
	sign := "u"
	if f.signed {
		sign = "s"
	}
	if f.overflow {
		return fmt.Sprintf("fxp<%s,%d,%d,overflow>", sign, f.wordLength, f.integerWordLength)
	}
	return fmt.Sprintf("fxp<%s,%d,%d>", sign, f.wordLength, f.integerWordLength)
}

func pow2(exp int) *big.Rat {
	if exp >= 0 {
		return new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(exp)))
	}
	return new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), uint(-exp)))
}

// FixedPointValue is the host-side form of a fixed-point quantity. Value is
// exact: every representable fixed-point number has a finite decimal form.
type FixedPointValue struct {
	Value    *apd.Decimal
	Overflow bool
}

// NewFixedPointValue converts a float64 without rounding.
func NewFixedPointValue(f float64) (FixedPointValue, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return FixedPointValue{}, errors.InvalidInput(errors.PhasePack, fmt.Sprintf("non-finite fixed-point value %v", f))
	}
	return FixedPointFromRat(new(big.Rat).SetFloat64(f), false), nil
}

// ParseFixedPointValue parses a decimal string such as "-1.25" or "3e-2".
func ParseFixedPointValue(s string) (FixedPointValue, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return FixedPointValue{}, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, fmt.Sprintf("fixed-point value %q", s))
	}
	if d.Form != apd.Finite {
		return FixedPointValue{}, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("non-finite fixed-point value %q", s))
	}
	return FixedPointValue{Value: d}, nil
}

// FixedPointFromRat converts an exact rational. Dyadic rationals (all
// fixed-point values) convert without loss; others round to 64 significant
// digits.
func FixedPointFromRat(r *big.Rat, overflow bool) FixedPointValue {
	return FixedPointValue{Value: ratToDecimal(r), Overflow: overflow}
}

// Rat returns the exact rational value. A nil Value is zero.
func (v FixedPointValue) Rat() (*big.Rat, error) {
	if v.Value == nil {
		return new(big.Rat), nil
	}
	if v.Value.Form != apd.Finite {
		return nil, errors.InvalidInput(errors.PhasePack, "non-finite fixed-point value "+v.Value.String())
	}
	r, ok := new(big.Rat).SetString(v.Value.Text('f'))
	if !ok {
		return nil, errors.InvalidInput(errors.PhasePack, "malformed fixed-point value "+v.Value.String())
	}
	return r, nil
}

// Float64 returns the nearest float64.
func (v FixedPointValue) Float64() float64 {
	if v.Value == nil {
		return 0
	}
	f, err := v.Value.Float64()
	if err != nil {
		return math.NaN()
	}
	return f
}

// Equal compares values numerically, ignoring representation.
func (v FixedPointValue) Equal(o FixedPointValue) bool {
	if v.Overflow != o.Overflow {
		return false
	}
	a, b := v.Value, o.Value
	if a == nil {
		a = new(apd.Decimal)
	}
	if b == nil {
		b = new(apd.Decimal)
	}
	return a.Cmp(b) == 0
}

func (v FixedPointValue) String() string {
	s := "0"
	if v.Value != nil {
		s = v.Value.Text('f')
	}
	if v.Overflow {
		return s + " (overflow)"
	}
	return s
}

func ratToDecimal(r *big.Rat) *apd.Decimal {
	d := new(apd.Decimal)
	num, den := r.Num(), r.Denom()

	k := den.BitLen() - 1
	if new(big.Int).Lsh(big.NewInt(1), uint(k)).Cmp(den) == 0 {
		// n / 2^k == n * 5^k / 10^k
		coeff := new(big.Int).Mul(num, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(k)), nil))
		d.Negative = coeff.Sign() < 0
		d.Coeff.SetMathBigInt(coeff.Abs(coeff))
		d.Exponent = int32(-k)
		d.Reduce(d)
		return d
	}

	ctx := apd.BaseContext.WithPrecision(64)
	n := new(apd.Decimal)
	n.Negative = num.Sign() < 0
	n.Coeff.SetMathBigInt(new(big.Int).Abs(num))
	q := new(apd.Decimal)
	q.Coeff.SetMathBigInt(den)
	if _, err := ctx.Quo(d, n, q); err != nil {
		// Quotient exponent is outside apd's range. Round to 256 bits and
		// take the exact dyadic path instead.
		f, _ := new(big.Float).SetPrec(256).SetRat(r).Rat(nil)
		return ratToDecimal(f)
	}
	d.Reduce(d)
	return d
}
