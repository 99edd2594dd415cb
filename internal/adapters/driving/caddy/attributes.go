package caddy

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"github.com/caddyserver/caddy/v2/modules/caddyhttp"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// MaxHeaderValueLength is the maximum length for HTTP header values.
const MaxHeaderValueLength = 8192

// sanitizeHeaderValue removes dangerous characters and enforces length limits.
func sanitizeHeaderValue(v string) string {
	if v == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(min(len(v), MaxHeaderValueLength))

	for _, r := range v {
		// Skip control characters (including CR, LF, null)
		if r < 32 || r == 127 {
			continue
		}

		// Skip Unicode line/paragraph separators
		if r == '\u2028' || r == '\u2029' {
			continue
		}

		// Format characters (includes BOM, RTL override, etc.)
		if unicode.Is(unicode.Cf, r) {
			continue
		}

		if result.Len()+len(string(r)) > MaxHeaderValueLength {
			break
		}
		result.WriteRune(r)
	}

	return result.String()
}

// decorateHeaders layers the evaluated bindings over r's headers. Absent
// values are skipped; present values are sanitized first.
func decorateHeaders(r *http.Request, results []domain.EvaluatedBinding) *http.Request {
	d := NewDecoratedRequest(r)
	for _, res := range results {
		if !res.Present {
			continue
		}
		d.AddValue(res.Destination, sanitizeHeaderValue(res.Value))
	}
	return d.Request()
}

// setRequestAttributes stores the evaluated bindings as request-scoped
// variables (Caddy's {http.vars.*}). An absent value removes any existing
// variable of that name. The vars map belongs to the current request; one
// is attached if the context has none.
func setRequestAttributes(r *http.Request, results []domain.EvaluatedBinding) *http.Request {
	if _, ok := r.Context().Value(caddyhttp.VarsCtxKey).(map[string]any); !ok {
		ctx := context.WithValue(r.Context(), caddyhttp.VarsCtxKey, make(map[string]any))
		r = r.WithContext(ctx)
	}

	for _, res := range results {
		if res.Present {
			caddyhttp.SetVar(r.Context(), res.Destination, res.Value)
		} else {
			caddyhttp.SetVar(r.Context(), res.Destination, nil)
		}
	}
	return r
}

// GetRequestAttribute returns a request attribute set by the handler in
// attribute mode.
func GetRequestAttribute(r *http.Request, name string) (string, bool) {
	v, ok := caddyhttp.GetVar(r.Context(), name).(string)
	return v, ok
}

// RequestAttributes returns every string-valued request variable, which
// includes the attributes set by the handler in attribute mode.
func RequestAttributes(r *http.Request) map[string]string {
	vars, _ := r.Context().Value(caddyhttp.VarsCtxKey).(map[string]any)
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
