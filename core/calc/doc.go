// Package calc implements a stateless calculator over integer and
// floating-point numbers.
//
// Operands cross into the package in one of two ways. The typed path uses
// [Number] values and their [Number.Add], [Number.Sub], [Number.Mul],
// [Number.Div] and [Number.Pow] methods. The dynamic path uses [Calculator],
// whose operations accept untyped values (for example, values decoded from
// JSON), validate them with [NumberOf], and fail with
// [ErrInvalidArgumentType] when either operand is not a number. Division
// always yields a floating-point result and fails with [ErrDivisionByZero]
// when the divisor is zero.
package calc
