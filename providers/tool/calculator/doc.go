// Package calculator exposes the calculator as JSON-callable tools.
//
// [NewCalculatorTool] returns a single tool that takes the operation name
// alongside the operands. [NewOperationTools] returns one tool per operation,
// and [NewCatalog] registers all of them in a [tool.Catalog]. Operands are
// validated by [calc.Calculator], so a quoted number such as "3" fails with
// [calc.ErrInvalidArgumentType] rather than being coerced.
package calculator
