package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/calc/core/calc"
	"github.com/leofalp/calc/providers/tool"
)

// ErrUnknownOperation is returned when Input.Op names no known operation.
var ErrUnknownOperation = errors.New("calc: unknown operation")

// Input holds two operands and the operation to apply to them. The operands
// are untyped so that non-numeric values reach the calculator's validation.
type Input struct {
	A  any    `json:"a"`
	B  any    `json:"b"`
	Op string `json:"op"`
}

// Operands holds the two operands of a single-operation tool.
type Operands struct {
	A any `json:"a"`
	B any `json:"b"`
}

// Output carries the result. Integers encode as integer literals and floats
// always carry a fractional part or exponent.
type Output struct {
	Result calc.Number `json:"result"`
}

func operandSchema(description string) *tool.Schema {
	return &tool.Schema{Type: "number", Description: description}
}

func operandsSchema() *tool.Schema {
	return tool.Object(map[string]*tool.Schema{
		"a": operandSchema("First operand (integer or float)"),
		"b": operandSchema("Second operand (integer or float)"),
	}, "a", "b")
}

func inputSchema() *tool.Schema {
	schema := operandsSchema()
	enum := make([]any, 0, len(calc.Operations()))
	for _, op := range calc.Operations() {
		enum = append(enum, string(op))
	}
	schema.Properties["op"] = &tool.Schema{Type: "string", Description: "Operation to apply", Enum: enum}
	schema.Required = append(schema.Required, "op")
	return schema
}

// NewCalculatorTool returns a tool that applies Input.Op to Input.A and
// Input.B using c. Op accepts names, short aliases and symbols ("add", "+",
// "sub", "*", "div", "pow", "**", ...). A nil c uses a plain calculator.
//
// Example:
//
//	out, err := calculator.NewCalculatorTool(nil).Call(ctx, `{"a": 10, "b": 4, "op": "div"}`)
//	// out == `{"result":2.5}`
func NewCalculatorTool(c *calc.Calculator) *tool.Tool[Input, Output] {
	if c == nil {
		c = calc.New()
	}
	return tool.NewTool("Calculator",
		func(ctx context.Context, in Input) (Output, error) {
			op, ok := calc.ParseOperation(in.Op)
			if !ok {
				return Output{}, fmt.Errorf("%w: %q", ErrUnknownOperation, in.Op)
			}
			result, err := c.Apply(op, in.A, in.B)
			if err != nil {
				return Output{}, err
			}
			return Output{Result: result}, nil
		},
		tool.WithDescription("Performs addition, subtraction, multiplication, division or exponentiation on two numbers."),
		tool.WithParameters(inputSchema()),
	)
}

// NewOperationTools returns one tool per operation, named after it.
func NewOperationTools(c *calc.Calculator) []tool.GenericTool {
	if c == nil {
		c = calc.New()
	}
	descriptions := map[calc.Operation]string{
		calc.OpAdd:      "Returns a + b.",
		calc.OpSubtract: "Returns a - b.",
		calc.OpMultiply: "Returns a * b.",
		calc.OpDivide:   "Returns a / b as a float. Fails when b is zero.",
		calc.OpPower:    "Returns a raised to the power b.",
	}

	tools := make([]tool.GenericTool, 0, len(descriptions))
	for _, op := range calc.Operations() {
		tools = append(tools, tool.NewTool(string(op),
			func(ctx context.Context, in Operands) (Output, error) {
				result, err := c.Apply(op, in.A, in.B)
				if err != nil {
					return Output{}, err
				}
				return Output{Result: result}, nil
			},
			tool.WithDescription(descriptions[op]),
			tool.WithParameters(operandsSchema()),
		))
	}
	return tools
}

// NewCatalog returns a catalog holding the combined calculator tool and the
// per-operation tools, all backed by c.
func NewCatalog(c *calc.Calculator) *tool.Catalog {
	if c == nil {
		c = calc.New()
	}
	catalog := tool.NewCatalog(NewCalculatorTool(c))
	catalog.AddTools(NewOperationTools(c)...)
	return catalog
}
