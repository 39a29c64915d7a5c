package cypher

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/cygraph/pkg/errors"
)

// =============================================================================
// Type Inference
// =============================================================================

// inferTag maps a runtime property value to its type tag.
// key is threaded through purely for error context.
func inferTag(key string, v any) (Tag, error) {
	switch val := v.(type) {
	case bool:
		return TagBool, nil
	case string:
		return TagString, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TagInt, nil
	case float32, float64:
		return TagFloat, nil
	case []bool:
		return TagBoolArray, nil
	case []string:
		return TagStringArray, nil
	case []int, []int32, []int64:
		return TagIntArray, nil
	case []float32, []float64:
		return TagFloatArray, nil
	case []any:
		return inferAnySlice(key, val)
	default:
		return "", errors.New(errors.ErrCodeUnsupportedType,
			"property %q: unsupported value type %T", key, v)
	}
}

// inferAnySlice requires every element to infer to the same scalar tag.
// Mixed-type and nested sequences are not representable.
func inferAnySlice(key string, vals []any) (Tag, error) {
	if len(vals) == 0 {
		return TagStringArray, nil
	}

	var elem Tag
	for _, v := range vals {
		t, err := inferTag(key, v)
		if err != nil {
			return "", err
		}
		if t.IsArray() {
			return "", errors.New(errors.ErrCodeUnsupportedType,
				"property %q: nested sequences are not representable", key)
		}
		if elem == "" {
			elem = t
		} else if t != elem {
			return "", errors.New(errors.ErrCodeUnsupportedType,
				"property %q: mixed-type sequence (%s vs %s)", key, elem, t)
		}
	}
	return elem.Array(), nil
}

// =============================================================================
// Encoding
// =============================================================================

// formatValue renders a property value as cell text under the column's
// finalized tag. The tag may be wider than the value's own type after
// conflict widening (int under float, anything under string).
func formatValue(key string, v any, t Tag) (string, error) {
	if t.IsArray() {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			// Scalar under an array tag cannot happen: that conflict
			// widens the whole column to string.
			return "", errors.New(errors.ErrCodeInternal,
				"property %q: scalar value in %s column", key, t)
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := formatScalar(key, rv.Index(i).Interface(), t.Elem())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ArrayDelimiter), nil
	}
	return formatScalar(key, v, t)
}

func formatScalar(key string, v any, t Tag) (string, error) {
	switch t {
	case TagBool:
		b, ok := v.(bool)
		if !ok {
			return "", errors.New(errors.ErrCodeInternal,
				"property %q: %T in boolean column", key, v)
		}
		return strconv.FormatBool(b), nil

	case TagInt:
		return formatInt(key, v)

	case TagFloat:
		f, ok := toFloat64(v)
		if !ok {
			return "", errors.New(errors.ErrCodeInternal,
				"property %q: %T in float column", key, v)
		}
		return formatFloat(f), nil

	case TagString:
		return canonicalText(key, v)

	default:
		return "", errors.New(errors.ErrCodeInternal, "property %q: unknown tag %s", key, t)
	}
}

// canonicalText renders any supported value under the universal string
// fallback: scalars use their scalar text, sequences join element texts.
func canonicalText(key string, v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case float32, float64:
		f, _ := toFloat64(val)
		return formatFloat(f), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return formatInt(key, val)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := canonicalText(key, rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ArrayDelimiter), nil
	}

	return "", errors.New(errors.ErrCodeUnsupportedType,
		"property %q: unsupported value type %T", key, v)
}

func formatInt(key string, v any) (string, error) {
	switch val := v.(type) {
	case int:
		return strconv.FormatInt(int64(val), 10), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	}
	return "", errors.New(errors.ErrCodeInternal, "property %q: %T in int column", key, v)
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	}
	return 0, false
}

// formatFloat renders the shortest text that round-trips the float.
// Whole values keep a trailing ".0" so a float column stays visually
// distinct from an int column (5 encodes as "5.0").
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// =============================================================================
// Decoding
// =============================================================================

// parseValue decodes cell text under the column's tag. Empty cells are
// handled by the caller (absent key) and never reach here.
func parseValue(cell string, t Tag) (any, error) {
	if t.IsArray() {
		return parseArray(cell, t.Elem())
	}
	return parseScalar(cell, t)
}

func parseScalar(s string, t Tag) (any, error) {
	switch t {
	case TagInt:
		return strconv.ParseInt(s, 10, 64)
	case TagFloat:
		return strconv.ParseFloat(s, 64)
	case TagBool:
		switch s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean literal", s)
	case TagString:
		return s, nil
	}
	return nil, fmt.Errorf("unknown tag %s", t)
}

// parseArray splits a cell on the array delimiter and decodes each element.
// A single leading or trailing empty segment is tolerated, so ";" and
// "a;" parse cleanly; empty segments elsewhere are element parse errors
// for non-string tags.
func parseArray(cell string, elem Tag) (any, error) {
	parts := strings.Split(cell, ArrayDelimiter)
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	switch elem {
	case TagInt:
		out := make([]int64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case TagFloat:
		out := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case TagBool:
		out := make([]bool, len(parts))
		for i, p := range parts {
			v, err := parseScalar(p, TagBool)
			if err != nil {
				return nil, err
			}
			out[i] = v.(bool)
		}
		return out, nil

	case TagString:
		return parts, nil
	}
	return nil, fmt.Errorf("unknown tag %s", elem)
}
