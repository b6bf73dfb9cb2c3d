// Package tool binds typed Go functions to a JSON-in/JSON-out calling
// convention, so calculator operations can be invoked from untyped sources
// such as language-model tool calls or request bodies.
//
// [NewTool] wraps a function as a [Tool]; every Tool satisfies
// [GenericTool]. A [Catalog] stores tools by case-insensitive name and
// dispatches calls to them.
package tool
