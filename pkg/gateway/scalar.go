package gateway

import (
	"context"
	"strconv"
)

// Scalar lists the plain-text result kinds the upstream query endpoints return.
type Scalar interface {
	int64 | float64 | string
}

// FetchScalar fetches a plain-text body and converts it to T.
func FetchScalar[T Scalar](ctx context.Context, src TextSource, path []string, params Params) (T, error) {
	text, err := src.FetchText(ctx, path, params)
	if err != nil {
		var zero T
		return zero, err
	}
	return ParseScalar[T](text)
}

// ParseScalar converts text to T, failing with a DecodeFailedError.
func ParseScalar[T Scalar](text string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *int64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return out, &DecodeFailedError{Kind: "integer", Err: err}
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return out, &DecodeFailedError{Kind: "float", Err: err}
		}
		*p = v
	case *string:
		*p = text
	}
	return out, nil
}
