package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leofalp/calc/core/parse"
	"github.com/leofalp/calc/providers/observability"
)

// Tool binds a name, a description and a parameter schema to a typed
// function. Use [NewTool] to construct one.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// Info is the metadata used to advertise a tool.
type Info struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// GenericTool abstracts over the type parameters of [Tool] so tools can be
// stored and dispatched without knowing their input and output types.
type GenericTool interface {
	// ToolInfo returns the tool's name, description and parameter schema.
	ToolInfo() Info

	// Call invokes the tool with JSON input and returns JSON output.
	Call(ctx context.Context, inputJSON string) (string, error)
}

type funcToolOptions struct {
	Description string
	Parameters  *Schema
}

// WithDescription sets a human-readable description for the tool.
func WithDescription(description string) func(*funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Description = description
	}
}

// WithParameters sets the schema advertised for the tool's input.
func WithParameters(schema *Schema) func(*funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Parameters = schema
	}
}

// NewTool constructs a [Tool] named name that runs function.
//
// Example:
//
//	addTool := tool.NewTool("add", addFunc,
//	    tool.WithDescription("Adds two numbers."),
//	    tool.WithParameters(operandsSchema),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(*funcToolOptions)) *Tool[I, O] {
	opts := &funcToolOptions{}
	for _, option := range options {
		option(opts)
	}
	return &Tool[I, O]{
		Name:        name,
		Description: opts.Description,
		Parameters:  opts.Parameters,
		Function:    function,
	}
}

// ToolInfo returns the metadata used to advertise the tool.
func (t *Tool[I, O]) ToolInfo() Info {
	return Info{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call parses inputJSON into I with [parse.ParseStringAs], runs the function
// and returns the output encoded as JSON. When ctx carries a span, start and
// end events are added to it along with input, output, duration and any error.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, observability.TruncateString(inputJSON, 0)),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd,
			observability.String(observability.AttrToolName, t.Name),
		)
	}

	start := time.Now()

	input, err := parse.ParseStringAs[I](inputJSON)
	if err != nil {
		recordFailure(span, err, time.Since(start))
		return "", err
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		recordFailure(span, err, time.Since(start))
		return "", err
	}

	encoded, err := json.Marshal(output)
	if err != nil {
		recordFailure(span, err, time.Since(start))
		return "", err
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrToolOutput, string(encoded)),
			observability.Duration(observability.AttrToolDuration, time.Since(start)),
		)
	}
	return string(encoded), nil
}

func recordFailure(span observability.Span, err error, duration time.Duration) {
	if span == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(
		observability.String(observability.AttrToolError, err.Error()),
		observability.Duration(observability.AttrToolDuration, duration),
	)
}
