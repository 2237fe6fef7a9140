package coerce

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"github.com/wippyai/fpga-runtime/errors"
	"github.com/wippyai/fpga-runtime/types"
)

// ErrNotNumeric is returned by ToRat for Go types that carry no number.
var ErrNotNumeric = stderrors.New("not a numeric value")

// ToRat converts a fixed-point host value to an exact rational. It accepts
// types.FixedPointValue (overflow flag returned alongside), *apd.Decimal,
// apd.Decimal, *big.Rat, decimal strings and any number ToFloat64 accepts.
//
// Unsupported Go types yield ErrNotNumeric. Values of a supported type that
// do not denote a finite number (unparsable strings, NaN, nil pointers)
// yield an invalid_input *errors.Error.
func ToRat(value any) (r *big.Rat, overflow bool, err error) {
	switch v := value.(type) {
	case types.FixedPointValue:
		r, err := v.Rat()
		if err != nil {
			return nil, false, err
		}
		return r, v.Overflow, nil
	case *types.FixedPointValue:
		if v == nil {
			return nil, false, nilValue(value)
		}
		return ToRat(*v)
	case *apd.Decimal:
		if v == nil {
			return nil, false, nilValue(value)
		}
		return ToRat(types.FixedPointValue{Value: v})
	case apd.Decimal:
		return ToRat(types.FixedPointValue{Value: &v})
	case *big.Rat:
		if v == nil {
			return nil, false, nilValue(value)
		}
		return new(big.Rat).Set(v), false, nil
	case string:
		fv, err := types.ParseFixedPointValue(v)
		if err != nil {
			return nil, false, err
		}
		return ToRat(fv)
	case json.Number:
		return ToRat(string(v))
	}

	if i, isInt := ToInt64(value); isInt {
		return new(big.Rat).SetInt64(i), false, nil
	}
	if u, isUint := ToUint64(value); isUint {
		return new(big.Rat).SetUint64(u), false, nil
	}
	f, isNum := ToFloat64(value)
	if !isNum {
		return nil, false, ErrNotNumeric
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false, errors.New(errors.PhasePack, errors.KindInvalidInput).
			Value(f).
			Detail("non-finite value %v", f).
			Build()
	}
	return new(big.Rat).SetFloat64(f), false, nil
}

func nilValue(value any) error {
	return errors.New(errors.PhasePack, errors.KindInvalidInput).
		GoType(TypeName(value)).
		Detail("nil value").
		Build()
}
