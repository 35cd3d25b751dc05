package shape

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

// FromDict rebuilds a shape from the dict produced by [ToDict], either
// directly or after a JSON/TOML/YAML round trip (numbers may arrive as
// float64, int64 or json.Number; corners as their symbolic names).
func FromDict(d map[string]any) (Shape, error) {
	kind, ok := d["type"].(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "shape dict has no string \"type\"")
	}
	params, _ := d["parameters"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	return FromParameters(Kind(kind), params)
}

// FromParameters builds a shape of the given kind from its parameters.
func FromParameters(kind Kind, params map[string]any) (Shape, error) {
	switch kind {
	case KindAlternatingRectangle:
		w, err := intParam(params, "width")
		if err != nil {
			return nil, err
		}
		h, err := intParam(params, "height")
		if err != nil {
			return nil, err
		}
		sw, err := boolParam(params, "scale_width")
		if err != nil {
			return nil, err
		}
		sh, err := boolParam(params, "scale_height")
		if err != nil {
			return nil, err
		}
		return NewAlternatingRectangle(w, h, sw, sh)

	case KindAlternatingSquare:
		dim, err := intParam(params, "dimension")
		if err != nil {
			return nil, err
		}
		return NewAlternatingSquare(dim)

	case KindAlternatingCornerSquare:
		dim, err := intParam(params, "dimension")
		if err != nil {
			return nil, err
		}
		c, err := cornerParam(params, "corner")
		if err != nil {
			return nil, err
		}
		return NewAlternatingCornerSquare(dim, c)

	case KindRawRectangle:
		entries, err := matrixParam(params, "indices")
		if err != nil {
			return nil, err
		}
		return NewRawRectangle(entries)

	default:
		return nil, errors.New(errors.ErrCodeUnsupportedType, "unknown shape type %q", kind)
	}
}

func intParam(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing parameter %q", key)
	}
	n, err := ToInt(v)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %q", key)
	}
	return n, nil
}

// boolParam returns false for a missing key.
func boolParam(params map[string]any, key string) (bool, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.New(errors.ErrCodeInvalidInput, "parameter %q must be a bool, got %T", key, v)
	}
	return b, nil
}

func cornerParam(params map[string]any, key string) (geom.Corner, error) {
	switch v := params[key].(type) {
	case geom.Corner:
		return v, nil
	case string:
		c, err := geom.ParseCorner(v)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %q", key)
		}
		return c, nil
	case nil:
		return 0, errors.New(errors.ErrCodeInvalidInput, "missing parameter %q", key)
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %q must be a corner name, got %T", key, v)
	}
}

func matrixParam(params map[string]any, key string) ([][]int, error) {
	switch v := params[key].(type) {
	case [][]int:
		return v, nil
	case []any:
		out := make([][]int, len(v))
		for y, rowAny := range v {
			row, err := ToIntSlice(rowAny)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %q row %d", key, y)
			}
			out[y] = row
		}
		return out, nil
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing parameter %q", key)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "parameter %q must be a list of rows, got %T", key, v)
	}
}

// ToInt converts the numeric representations produced by the JSON, TOML and
// YAML decoders to int. Non-integral floats are rejected.
func ToInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, errors.New(errors.ErrCodeInvalidInput, "integer %d out of range", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, errors.New(errors.ErrCodeInvalidInput, "expected an integer, got %v", n)
		}
		// float64(math.MaxInt) rounds up to 2^63, itself out of range.
		if n < math.MinInt || n >= math.MaxInt {
			return 0, errors.New(errors.ErrCodeInvalidInput, "integer %v out of range", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "expected an integer, got %s", n)
		}
		return int(i), nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "expected an integer, got %T", v)
	}
}

// ToIntSlice converts a decoded list of numbers to []int.
func ToIntSlice(v any) ([]int, error) {
	switch s := v.(type) {
	case []int:
		return append([]int(nil), s...), nil
	case []any:
		out := make([]int, len(s))
		for i, e := range s {
			n, err := ToInt(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected a list of integers, got %T", v)
	}
}
