package calc

import "strings"

// Operation names one of the five calculator operations.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
	OpPower    Operation = "power"
)

// Operations lists every operation in demonstration order.
func Operations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower}
}

// ParseOperation resolves a name, short alias or symbol to an Operation.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseOperation(s string) (Operation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+":
		return OpAdd, true
	case "subtract", "sub", "-":
		return OpSubtract, true
	case "multiply", "mul", "*", "×":
		return OpMultiply, true
	case "divide", "div", "/", "÷":
		return OpDivide, true
	case "power", "pow", "^", "**":
		return OpPower, true
	default:
		return "", false
	}
}

// Symbol returns the symbol used when printing the operation.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	case OpPower:
		return "^"
	default:
		return "?"
	}
}
