//go:build unit

package caddy

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/quick"

	"github.com/caddyserver/caddy/v2/modules/caddyhttp"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

func TestSanitizeHeaderValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "bob@vt.edu", "bob@vt.edu"},
		{"crlf injection", "value\r\nInjected-Header: bad", "valueInjected-Header: bad"},
		{"null byte", "before\x00after", "beforeafter"},
		{"tab stripped", "a\tb", "ab"},
		{"del stripped", "a\x7fb", "ab"},
		{"line separator", "a\u2028b", "ab"},
		{"rtl override", "\u202Eevil", "evil"},
		{"unicode kept", "日本語", "日本語"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeHeaderValue(tc.input); got != tc.want {
				t.Errorf("sanitizeHeaderValue(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeHeaderValue_TruncatesLongValues(t *testing.T) {
	got := sanitizeHeaderValue(strings.Repeat("a", MaxHeaderValueLength+100))
	if len(got) != MaxHeaderValueLength {
		t.Errorf("len = %d, want %d", len(got), MaxHeaderValueLength)
	}
}

func TestSanitizeHeaderValue_Property_NoHeaderInjection(t *testing.T) {
	f := func(v string) bool {
		out := sanitizeHeaderValue(v)
		return !strings.ContainsAny(out, "\r\n\x00") && len(out) <= MaxHeaderValueLength
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDecorateHeaders_SkipsAbsent(t *testing.T) {
	base := httptest.NewRequest("GET", "/", nil)
	results := []domain.EvaluatedBinding{
		{Destination: "UNIQUE_ID", Value: "123", Present: true},
		{Destination: "REMOTE_USER", Present: false},
		{Destination: "EMPTY", Value: "", Present: true},
	}

	r := decorateHeaders(base, results)

	if got := r.Header.Get("UNIQUE_ID"); got != "123" {
		t.Errorf("UNIQUE_ID = %q, want 123", got)
	}
	if _, ok := r.Header["Remote_user"]; ok {
		t.Error("REMOTE_USER present, want skipped")
	}
	if vals, ok := r.Header["Empty"]; !ok || len(vals) != 1 || vals[0] != "" {
		t.Errorf("EMPTY = %v, want one empty value", vals)
	}
}

func TestSetRequestAttributes_AttachesVars(t *testing.T) {
	base := httptest.NewRequest("GET", "/", nil)
	results := []domain.EvaluatedBinding{
		{Destination: "UNIQUE_ID", Value: "123", Present: true},
		{Destination: "REMOTE_USER", Present: false},
	}

	r := setRequestAttributes(base, results)

	if _, ok := base.Context().Value(caddyhttp.VarsCtxKey).(map[string]any); ok {
		t.Error("base request gained a vars map, want untouched")
	}
	if got, ok := GetRequestAttribute(r, "UNIQUE_ID"); !ok || got != "123" {
		t.Errorf("GetRequestAttribute(UNIQUE_ID) = (%q, %v), want (123, true)", got, ok)
	}
	if _, ok := GetRequestAttribute(r, "REMOTE_USER"); ok {
		t.Error("GetRequestAttribute(REMOTE_USER) ok = true, want false")
	}
}

func TestRequestAttributes_OnlyStrings(t *testing.T) {
	vars := map[string]any{"UNIQUE_ID": "123", "trusted_proxy": true}
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), caddyhttp.VarsCtxKey, vars))

	got := RequestAttributes(r)
	if len(got) != 1 || got["UNIQUE_ID"] != "123" {
		t.Errorf("RequestAttributes() = %v, want only UNIQUE_ID", got)
	}

	if got := RequestAttributes(httptest.NewRequest("GET", "/", nil)); len(got) != 0 {
		t.Errorf("RequestAttributes(no vars) = %v, want empty", got)
	}
}
