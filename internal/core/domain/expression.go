package domain

import (
	"fmt"
	"strings"
)

// Placeholder marks the substitution slot when a template is displayed.
const Placeholder = "%s"

// AttributeExpression names a source attribute and, optionally, a literal
// template with exactly one substitution slot. It is immutable once parsed.
//
// Expressions have two forms:
//
//	uid                               raw value passthrough
//	uid=[uid],ou=people,dc=vt,dc=edu  value substituted into literal text
//
// Only one bracketed attribute name is supported per expression. The first
// bracket pair names the source; a second pair is left as literal text.
type AttributeExpression struct {
	source string

	// segments holds the literal text around each occurrence of the
	// bracketed name. nil means passthrough.
	segments []string
}

// ParseExpression parses a configured expression string.
func ParseExpression(raw string) (AttributeExpression, error) {
	if raw == "" {
		return AttributeExpression{}, InvalidConfigError("invalid expression", ErrEmptyAttributeName)
	}

	open := strings.IndexByte(raw, '[')
	closing := strings.IndexByte(raw, ']')

	if open < 0 && closing < 0 {
		return AttributeExpression{source: raw}, nil
	}
	if open < 0 || closing < 0 || closing < open {
		return AttributeExpression{}, InvalidConfigError(
			fmt.Sprintf("invalid expression %q", raw), ErrUnmatchedBracket)
	}
	if closing-open <= 1 {
		return AttributeExpression{}, InvalidConfigError(
			fmt.Sprintf("invalid expression %q: no attribute name found between brackets", raw), ErrEmptyAttributeName)
	}

	name := raw[open+1 : closing]
	return AttributeExpression{
		source:   name,
		segments: strings.Split(raw, "["+name+"]"),
	}, nil
}

// MustParseExpression is like ParseExpression but panics on error.
func MustParseExpression(raw string) AttributeExpression {
	e, err := ParseExpression(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// SourceAttribute returns the principal attribute the expression reads.
func (e AttributeExpression) SourceAttribute() string {
	return e.source
}

// HasTemplate reports whether the expression formats the value.
func (e AttributeExpression) HasTemplate() bool {
	return e.segments != nil
}

// Template returns the format string with the substitution slot shown as
// Placeholder, or "" for passthrough expressions.
func (e AttributeExpression) Template() string {
	if e.segments == nil {
		return ""
	}
	return strings.Join(e.segments, Placeholder)
}

// String returns the expression in its configured form.
func (e AttributeExpression) String() string {
	if e.segments == nil {
		return e.source
	}
	return strings.Join(e.segments, "["+e.source+"]")
}

// Evaluate resolves the expression against a principal's attributes.
//
// A missing attribute or an empty sequence is absent, never an error.
// Sequences contribute their first value. A template always produces a
// value; an absent source renders as the empty string. Without a template
// an absent source stays absent.
func (e AttributeExpression) Evaluate(attrs PrincipalAttributes) (string, bool) {
	var value string
	found := false
	if v, ok := attrs.Lookup(e.source); ok {
		value, found = v.First()
	}

	if e.segments == nil {
		return value, found
	}
	return strings.Join(e.segments, value), true
}
