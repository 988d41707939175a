// Package safe narrows decoded JSON values to Go numeric types with range checks.
package safe

import (
	"fmt"
	"math"
)

// number is satisfied by json.Number from both encoding/json and goccy/go-json.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// Int64 converts a decoded JSON value to int64. Floats must be integral.
func Int64(v any) (int64, error) {
	switch value := v.(type) {
	case nil:
		return 0, fmt.Errorf("null is not a number")
	case int:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case uint32:
		return int64(value), nil
	case uint64:
		if value > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of int64 range", value)
		}
		return int64(value), nil
	case float64:
		return floatToInt64(value)
	case number:
		if i, err := value.Int64(); err == nil {
			return i, nil
		}
		f, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse number %q: %w", value.String(), err)
		}
		return floatToInt64(f)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// Uint32 converts a decoded JSON value to uint32.
func Uint32(v any) (uint32, error) {
	i, err := Int64(v)
	if err != nil {
		return 0, err
	}
	if i < 0 || i > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", i)
	}
	return uint32(i), nil
}

// Float64 converts a decoded JSON value to float64.
func Float64(v any) (float64, error) {
	switch value := v.(type) {
	case nil:
		return 0, fmt.Errorf("null is not a number")
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case float64:
		return value, nil
	case number:
		f, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse number %q: %w", value.String(), err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v out of int64 range", f)
	}
	return int64(f), nil
}
