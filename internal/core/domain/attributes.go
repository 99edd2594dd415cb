package domain

// AttributeValue is a principal attribute value. SSO systems hand out either
// a single string or an ordered list of strings; the two shapes are kept
// apart explicitly instead of being inspected at evaluation time.
type AttributeValue struct {
	values   []string
	sequence bool
}

// Scalar returns a single-valued attribute.
func Scalar(v string) AttributeValue {
	return AttributeValue{values: []string{v}}
}

// Sequence returns a multi-valued attribute. The slice is copied.
func Sequence(vs ...string) AttributeValue {
	cp := make([]string, len(vs))
	copy(cp, vs)
	return AttributeValue{values: cp, sequence: true}
}

// IsSequence reports whether the value was supplied as a list.
func (v AttributeValue) IsSequence() bool {
	return v.sequence
}

// First returns the scalar value, or the first element of a sequence.
// An empty sequence has no first value.
func (v AttributeValue) First() (string, bool) {
	if len(v.values) == 0 {
		return "", false
	}
	return v.values[0], true
}

// Values returns a copy of all values.
func (v AttributeValue) Values() []string {
	cp := make([]string, len(v.values))
	copy(cp, v.values)
	return cp
}

// PrincipalAttributes maps attribute names to values for one authenticated
// principal. It is treated as read-only.
type PrincipalAttributes map[string]AttributeValue

// Lookup returns the named attribute.
func (a PrincipalAttributes) Lookup(name string) (AttributeValue, bool) {
	if a == nil {
		return AttributeValue{}, false
	}
	v, ok := a[name]
	return v, ok
}

// AttributesFromMulti builds PrincipalAttributes from the multi-valued map
// shape used by SAML and JWT claims. Single-element lists stay sequences.
func AttributesFromMulti(m map[string][]string) PrincipalAttributes {
	if len(m) == 0 {
		return PrincipalAttributes{}
	}
	attrs := make(PrincipalAttributes, len(m))
	for k, vs := range m {
		attrs[k] = Sequence(vs...)
	}
	return attrs
}

// ToMulti flattens attributes back into the multi-valued map shape.
// Scalars become single-element lists.
func (a PrincipalAttributes) ToMulti() map[string][]string {
	m := make(map[string][]string, len(a))
	for k, v := range a {
		m[k] = v.Values()
	}
	return m
}

// IsValidFieldName reports whether name is a usable header or request
// attribute name: non-empty and made only of RFC 7230 token characters.
func IsValidFieldName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return false
		}
	}
	return true
}

func isTokenChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
