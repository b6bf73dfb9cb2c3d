package calc

import "math"

// Add returns n+m. Two integers produce an integer unless the sum overflows
// int64, in which case the result is widened to float. Any float operand
// produces a float.
func (n Number) Add(m Number) Number {
	if n.kind == KindInt && m.kind == KindInt {
		if s, ok := addInt(n.i, m.i); ok {
			return Int(s)
		}
	}
	return Float(n.Float64() + m.Float64())
}

// Sub returns n-m with the same kind rules as [Number.Add].
func (n Number) Sub(m Number) Number {
	if n.kind == KindInt && m.kind == KindInt {
		if d, ok := subInt(n.i, m.i); ok {
			return Int(d)
		}
	}
	return Float(n.Float64() - m.Float64())
}

// Mul returns n*m with the same kind rules as [Number.Add].
func (n Number) Mul(m Number) Number {
	if n.kind == KindInt && m.kind == KindInt {
		if p, ok := mulInt(n.i, m.i); ok {
			return Int(p)
		}
	}
	return Float(n.Float64() * m.Float64())
}

// Div returns n/m as a float, even when both operands are integers and m
// divides n evenly. It fails with [ErrDivisionByZero] when m is zero.
func (n Number) Div(m Number) (Number, error) {
	if m.IsZero() {
		return Number{}, ErrDivisionByZero
	}
	return Float(n.Float64() / m.Float64()), nil
}

// Pow returns n raised to the power m.
//
// An integer base with a non-negative integer exponent yields an integer,
// widened to float on overflow. Every other combination yields a float
// computed by [math.Pow]. Raising zero to a negative power fails with
// [ErrDivisionByZero]. A negative base with a fractional exponent has no
// real result and yields NaN.
func (n Number) Pow(m Number) (Number, error) {
	if n.kind == KindInt && m.kind == KindInt && m.i >= 0 {
		if p, ok := powInt(n.i, m.i); ok {
			return Int(p), nil
		}
		return Float(math.Pow(float64(n.i), float64(m.i))), nil
	}

	exp := m.Float64()
	if n.IsZero() && exp < 0 && !math.IsInf(exp, -1) {
		return Number{}, ErrDivisionByZero
	}
	return Float(math.Pow(n.Float64(), exp)), nil
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	return d, (d < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

// powInt computes base**exp by repeated squaring. exp must be non-negative.
func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for exp > 0 {
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}
