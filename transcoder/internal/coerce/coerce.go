package coerce

import (
	"encoding/json"
	"math"
	"strconv"
)

// 2^63 and 2^64 are exactly representable; MaxInt64/MaxUint64 are not.
const (
	twoPow63 = float64(1 << 63)
	twoPow64 = twoPow63 * 2
)

// ToUint64 handles JSON decoded numbers (float64, json.Number) and native
// integer types. Negative or fractional values are rejected.
func ToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < twoPow64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < twoPow64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	case json.Number:
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u, true
		}
		if f, err := v.Float64(); err == nil {
			return ToUint64(f)
		}
	}
	return 0, false
}

// ToInt64 is the signed counterpart of ToUint64.
func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= -twoPow63 && v < twoPow63 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= -twoPow63 && f < twoPow63 && f == math.Trunc(f) {
			return int64(f), true
		}
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return ToInt64(f)
		}
	}
	return 0, false
}

// ToFloat64 accepts any numeric value. Integers wider than 53 bits may round.
func ToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// ToBool accepts bool only. Numbers are not truthy.
func ToBool(value any) (bool, bool) {
	b, ok := value.(bool)
	return b, ok
}
