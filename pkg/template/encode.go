package template

import (
	"encoding/json"
	"reflect"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/geom"
)

// Encode renders a dict-like value as JSON. Maps with string keys, slices,
// arrays, strings, booleans, numbers and nil are encoded as-is; corners and
// relative positions become their symbolic names. Any other type fails with
// an UNSUPPORTED_TYPE error. A non-empty indent pretty-prints the output.
// Map keys are sorted, so the output is stable.
func Encode(v any, indent string) ([]byte, error) {
	c, err := Canonicalize(v)
	if err != nil {
		return nil, err
	}
	if indent != "" {
		return json.MarshalIndent(c, "", indent)
	}
	return json.Marshal(c)
}

// Canonicalize converts v into a tree of plain JSON values, applying the
// same rules as [Encode].
func Canonicalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case geom.Corner:
		return encodeEnum(x)
	case geom.RelativePosition:
		return encodeEnum(x)
	case string, bool, json.Number:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			e, err := Canonicalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e, err := Canonicalize(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = e
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedType, "type %T is not encodable in JSON", v)
}

type textEnum interface {
	MarshalText() ([]byte, error)
}

func encodeEnum(e textEnum) (string, error) {
	text, err := e.MarshalText()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnsupportedType, err, "encode enumeration")
	}
	return string(text), nil
}
