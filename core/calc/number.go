package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which arm of the [Number] union is populated.
type Kind uint8

const (
	// KindInt is a 64-bit signed integer. It is the kind of the zero Number.
	KindInt Kind = iota
	// KindFloat is an IEEE 754 double-precision value.
	KindFloat
)

// String returns "int" or "float".
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Number is either an integer or a floating-point value. The zero value is
// the integer 0. Numbers are immutable and safe to copy.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an integer Number.
func Int(v int64) Number {
	return Number{kind: KindInt, i: v}
}

// Float returns a floating-point Number.
func Float(v float64) Number {
	return Number{kind: KindFloat, f: v}
}

// NumberOf converts an untyped value into a Number.
//
// Every Go integer and float kind is accepted, as are [Number] itself and
// [json.Number] literals produced by a decoder configured with UseNumber.
// Unsigned values above math.MaxInt64 become floats. Anything else, including
// strings that look numeric, booleans and nil, fails with
// [ErrInvalidArgumentType].
func NumberOf(v any) (Number, error) {
	switch x := v.(type) {
	case Number:
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.Number:
		return parseLiteral(string(x))
	default:
		return Number{}, fmt.Errorf("%w: got %T", ErrInvalidArgumentType, v)
	}
}

func fromUint(u uint64) Number {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

// parseLiteral parses a JSON number literal. Integers that do not fit in
// int64 are widened to float.
func parseLiteral(s string) (Number, error) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return Number{}, fmt.Errorf("%w: %q is not a numeric literal", ErrInvalidArgumentType, s)
	}
	if !strings.ContainsAny(s, ".eE") {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(v), nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, fmt.Errorf("%w: %q is not a numeric literal", ErrInvalidArgumentType, s)
	}
	return Float(v), nil
}

// Kind reports whether n holds an integer or a float.
func (n Number) Kind() Kind { return n.kind }

// IsInt reports whether n holds an integer.
func (n Number) IsInt() bool { return n.kind == KindInt }

// IsFloat reports whether n holds a float.
func (n Number) IsFloat() bool { return n.kind == KindFloat }

// Int64 returns the integer value of n. The boolean is false when n is a float.
func (n Number) Int64() (int64, bool) {
	if n.kind != KindInt {
		return 0, false
	}
	return n.i, true
}

// Float64 returns n converted to float64.
func (n Number) Float64() float64 {
	if n.kind == KindInt {
		return float64(n.i)
	}
	return n.f
}

// IsZero reports whether n equals zero (including negative zero).
func (n Number) IsZero() bool {
	if n.kind == KindInt {
		return n.i == 0
	}
	return n.f == 0
}

// Equal reports numeric equality across kinds, so Int(8) equals Float(8).
// NaN is never equal to anything.
func (n Number) Equal(m Number) bool {
	if n.kind == KindInt && m.kind == KindInt {
		return n.i == m.i
	}
	return n.Float64() == m.Float64()
}

// String formats n the way it is printed by the demonstration: integers have
// no fractional part, floats always carry one (3.0) or an exponent (1e+16),
// and non-finite floats print as inf, -inf or nan.
func (n Number) String() string {
	if n.kind == KindInt {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON encodes integers as integer literals and floats with a
// fractional part or exponent. Non-finite floats cannot be represented in
// JSON and produce an error.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.kind == KindFloat && (math.IsNaN(n.f) || math.IsInf(n.f, 0)) {
		return nil, fmt.Errorf("calc: cannot encode %s as JSON", formatFloat(n.f))
	}
	return []byte(n.String()), nil
}

// UnmarshalJSON decodes a JSON number literal. JSON strings are rejected
// with [ErrInvalidArgumentType]; null leaves n unchanged.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	v, err := parseLiteral(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}
