package caddy

import (
	"context"
	"net/http"
	"sort"

	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// decoratedRequestKey is the context key for the DecoratedRequest that
// produced a request.
type decoratedRequestKey struct{}

// DecoratedRequest layers synthesized header values over an inbound request
// without touching the original. Native values always take precedence.
//
// A DecoratedRequest is owned by the goroutine serving one request and is
// not safe for concurrent mutation.
type DecoratedRequest struct {
	base *http.Request

	// added holds synthesized values by canonical header key.
	added map[string][]string
	order []string
}

// NewDecoratedRequest wraps r.
func NewDecoratedRequest(r *http.Request) *DecoratedRequest {
	return &DecoratedRequest{
		base:  r,
		added: make(map[string][]string),
	}
}

// DecoratedRequestFrom returns the DecoratedRequest that produced r, or nil.
func DecoratedRequestFrom(r *http.Request) *DecoratedRequest {
	d, _ := r.Context().Value(decoratedRequestKey{}).(*DecoratedRequest)
	return d
}

// Base returns the wrapped request.
func (d *DecoratedRequest) Base() *http.Request {
	return d.base
}

// AddValue appends a synthesized value under name. Repeated calls keep
// insertion order.
func (d *DecoratedRequest) AddValue(name, value string) {
	key := http.CanonicalHeaderKey(name)
	if _, ok := d.added[key]; !ok {
		d.order = append(d.order, key)
	}
	d.added[key] = append(d.added[key], value)
}

// FirstValue returns the native value for name if the base request has one,
// otherwise the first synthesized value.
func (d *DecoratedRequest) FirstValue(name string) (string, bool) {
	if native := d.base.Header.Values(name); len(native) > 0 {
		return native[0], true
	}
	if added := d.added[http.CanonicalHeaderKey(name)]; len(added) > 0 {
		return added[0], true
	}
	return "", false
}

// AllValues iterates native values for name followed by synthesized ones.
func (d *DecoratedRequest) AllValues(name string) ports.ValueIterator {
	return newValueIterator(d.base.Header.Values(name), d.added[http.CanonicalHeaderKey(name)])
}

// Names iterates the union of native and synthesized header names. Names
// are canonical and de-duplicated: native names first in sorted order, then
// synthesized names not already present, in insertion order.
func (d *DecoratedRequest) Names() ports.ValueIterator {
	native := make([]string, 0, len(d.base.Header))
	for k := range d.base.Header {
		native = append(native, http.CanonicalHeaderKey(k))
	}
	sort.Strings(native)

	seen := make(map[string]bool, len(native))
	names := native[:0]
	for _, k := range native {
		if !seen[k] {
			seen[k] = true
			names = append(names, k)
		}
	}

	var extra []string
	for _, k := range d.order {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	return newValueIterator(names, extra)
}

// Request returns a clone of the base request whose headers carry the
// synthesized values after the native ones, so Header.Get keeps native
// precedence and Header.Values lists native then synthesized. The clone's
// context links back to d. The base request is not modified.
func (d *DecoratedRequest) Request() *http.Request {
	ctx := context.WithValue(d.base.Context(), decoratedRequestKey{}, d)
	r := d.base.Clone(ctx)
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	for _, k := range d.order {
		for _, v := range d.added[k] {
			r.Header.Add(k, v)
		}
	}
	return r
}

// ValueIterator walks one or more value lists in order. It is one-shot:
// once Next returns false it stays exhausted.
type ValueIterator struct {
	lists [][]string
	cur   string
}

func newValueIterator(lists ...[]string) *ValueIterator {
	return &ValueIterator{lists: lists}
}

// Next advances to the next value.
func (it *ValueIterator) Next() bool {
	for len(it.lists) > 0 {
		if len(it.lists[0]) == 0 {
			it.lists = it.lists[1:]
			continue
		}
		it.cur = it.lists[0][0]
		it.lists[0] = it.lists[0][1:]
		return true
	}
	it.cur = ""
	return false
}

// Value returns the current value.
func (it *ValueIterator) Value() string {
	return it.cur
}

// Collect drains it into a slice.
func Collect(it ports.ValueIterator) []string {
	var out []string
	for it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// Ensure DecoratedRequest implements ports.HeaderView
var _ ports.HeaderView = (*DecoratedRequest)(nil)
