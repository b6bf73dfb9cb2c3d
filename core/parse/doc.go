// Package parse decodes loosely formatted JSON into typed values at the
// calculator's untyped boundary.
//
// Input often comes from hand-written requests or language-model tool calls,
// so [ParseStringAs] repairs malformed JSON with jsonrepair and unwraps
// schema-style {"type": ..., "value": ...} envelopes before decoding. Numbers
// are decoded as json.Number so integers stay integers; quoted numbers stay
// strings, and the calculator rejects them later.
package parse
