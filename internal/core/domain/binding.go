package domain

import (
	"fmt"
	"strings"
)

// AttributeBinding pairs a destination name (header or request attribute)
// with the expression that produces its value.
type AttributeBinding struct {
	Destination string
	Expression  AttributeExpression
}

// Bindings is the ordered binding list built once at provision time.
// It is read concurrently by every request and must not be modified.
type Bindings []AttributeBinding

// EvaluatedBinding is the per-request result of one binding.
type EvaluatedBinding struct {
	Destination string
	Value       string
	Present     bool
}

// NewBindings builds bindings from two whitespace-delimited lists with 1:1
// positional correspondence.
func NewBindings(destinationNames, rawExpressions string) (Bindings, error) {
	return BuildBindings(strings.Fields(destinationNames), strings.Fields(rawExpressions))
}

// BuildBindings builds bindings from already split lists. Both lists are
// required and must have the same length.
func BuildBindings(destinations, expressions []string) (Bindings, error) {
	if len(destinations) == 0 {
		return nil, ConfigError("no value defined for request_attributes")
	}
	if len(expressions) == 0 {
		return nil, ConfigError("no value defined for assertion_attributes")
	}
	if len(destinations) != len(expressions) {
		return nil, InvalidConfigError(
			fmt.Sprintf("%d request attributes, %d assertion attributes", len(destinations), len(expressions)),
			ErrLengthMismatch)
	}

	bindings := make(Bindings, len(destinations))
	for i, raw := range expressions {
		if !IsValidFieldName(destinations[i]) {
			return nil, InvalidConfigError(
				fmt.Sprintf("request_attributes[%d]: invalid name %q", i, destinations[i]), nil)
		}
		expr, err := ParseExpression(raw)
		if err != nil {
			return nil, fmt.Errorf("assertion_attributes[%d]: %w", i, err)
		}
		bindings[i] = AttributeBinding{Destination: destinations[i], Expression: expr}
	}
	return bindings, nil
}

// Evaluate resolves every binding in order against attrs.
func (b Bindings) Evaluate(attrs PrincipalAttributes) []EvaluatedBinding {
	out := make([]EvaluatedBinding, len(b))
	for i, binding := range b {
		v, ok := binding.Expression.Evaluate(attrs)
		out[i] = EvaluatedBinding{Destination: binding.Destination, Value: v, Present: ok}
	}
	return out
}

// Destinations returns the destination names in binding order.
func (b Bindings) Destinations() []string {
	names := make([]string, len(b))
	for i, binding := range b {
		names[i] = binding.Destination
	}
	return names
}
