package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs decodes content into T.
//
// Decoding proceeds in three steps:
//  1. content is parsed as JSON with numbers kept as json.Number;
//  2. if that fails, the JSON is repaired with jsonrepair and parsed again;
//  3. schema-style {"type": ..., "value": ...} wrappers are replaced by their
//     value, and the result is decoded into T.
//
// Example:
//
//	type Operands struct {
//	    A any `json:"a"`
//	    B any `json:"b"`
//	}
//
//	// Valid JSON
//	ops, err := parse.ParseStringAs[Operands](`{"a": 3, "b": 4}`)
//
//	// Malformed JSON is repaired
//	ops, err = parse.ParseStringAs[Operands](`{a: 3, 'b': 4,}`)
//
//	// Schema envelopes are unwrapped
//	ops, err = parse.ParseStringAs[Operands](`{"a": {"type": "integer", "value": 3}, "b": 4}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T

	raw, err := decodeGeneric(content)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to parse content as JSON and failed to repair it: %w (repair error: %v)", err, repairErr)
		}
		raw, err = decodeGeneric(repaired)
		if err != nil {
			return result, fmt.Errorf("failed to parse repaired JSON %q: %w", repaired, err)
		}
	}

	normalized, err := json.Marshal(unwrapSchemaValues(raw))
	if err != nil {
		return result, fmt.Errorf("failed to normalize JSON: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(normalized))
	decoder.UseNumber()
	if err := decoder.Decode(&result); err != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T: %w", result, err)
	}
	return result, nil
}

// decodeGeneric parses a single JSON value, rejecting trailing content.
func decodeGeneric(content string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after JSON value")
	}
	return value, nil
}

// unwrapSchemaValues replaces every {"type": ..., "value": ...} object (with
// exactly those two keys) by its value, recursively. This covers callers that
// confuse a JSON schema with the data it describes.
//
// Example input:
//
//	{"a": {"type": "integer", "value": 3}, "b": {"type": "number", "value": 2.5}}
//
// Example output:
//
//	{"a": 3, "b": 2.5}
func unwrapSchemaValues(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return unwrapSchemaValues(value)
			}
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = unwrapSchemaValues(val)
		}
		return out

	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = unwrapSchemaValues(val)
		}
		return out

	default:
		return data
	}
}
