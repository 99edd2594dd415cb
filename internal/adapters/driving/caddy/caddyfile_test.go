//go:build unit

package caddy

import (
	"strings"
	"testing"

	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
)

func TestUnmarshalCaddyfile(t *testing.T) {
	input := `sso_attributes {
		request_attributes UNIQUE_ID REMOTE_USER DISTINGUISHED_NAME
		assertion_attributes uid [user]@vt.edu uid=[uid],ou=people,dc=vt,dc=edu
		mode attribute
		session_cookie_name vt_sso
		session_duration 2h
		key_file /etc/sso/key.pem
		metrics on
	}`

	var s SSOAttributes
	if err := s.UnmarshalCaddyfile(caddyfile.NewTestDispenser(input)); err != nil {
		t.Fatalf("UnmarshalCaddyfile() error = %v", err)
	}

	if s.RequestAttributes != "UNIQUE_ID REMOTE_USER DISTINGUISHED_NAME" {
		t.Errorf("RequestAttributes = %q", s.RequestAttributes)
	}
	if s.AssertionAttributes != "uid [user]@vt.edu uid=[uid],ou=people,dc=vt,dc=edu" {
		t.Errorf("AssertionAttributes = %q", s.AssertionAttributes)
	}
	if s.Mode != ModeAttribute {
		t.Errorf("Mode = %q, want attribute", s.Mode)
	}
	if s.SessionCookieName != "vt_sso" {
		t.Errorf("SessionCookieName = %q, want vt_sso", s.SessionCookieName)
	}
	if s.SessionDuration != "2h" {
		t.Errorf("SessionDuration = %q, want 2h", s.SessionDuration)
	}
	if s.KeyFile != "/etc/sso/key.pem" {
		t.Errorf("KeyFile = %q, want /etc/sso/key.pem", s.KeyFile)
	}
	if !s.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
}

func TestUnmarshalCaddyfile_RepeatedListsAccumulate(t *testing.T) {
	input := `sso_attributes {
		request_attributes UNIQUE_ID
		request_attributes REMOTE_USER DISTINGUISHED_NAME
		assertion_attributes uid
		assertion_attributes [user]@vt.edu
		assertion_attributes uid=[uid],ou=people,dc=vt,dc=edu
	}`

	var s SSOAttributes
	if err := s.UnmarshalCaddyfile(caddyfile.NewTestDispenser(input)); err != nil {
		t.Fatalf("UnmarshalCaddyfile() error = %v", err)
	}

	if s.RequestAttributes != "UNIQUE_ID REMOTE_USER DISTINGUISHED_NAME" {
		t.Errorf("RequestAttributes = %q", s.RequestAttributes)
	}
	if got := strings.Fields(s.AssertionAttributes); len(got) != 3 || got[1] != "[user]@vt.edu" {
		t.Errorf("AssertionAttributes = %q", s.AssertionAttributes)
	}
}

func TestUnmarshalCaddyfile_BindingsFile(t *testing.T) {
	input := `sso_attributes {
		bindings_file /etc/sso/bindings.yaml
		metrics off
	}`

	var s SSOAttributes
	if err := s.UnmarshalCaddyfile(caddyfile.NewTestDispenser(input)); err != nil {
		t.Fatalf("UnmarshalCaddyfile() error = %v", err)
	}
	if s.BindingsFile != "/etc/sso/bindings.yaml" {
		t.Errorf("BindingsFile = %q", s.BindingsFile)
	}
	if s.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
}

func TestUnmarshalCaddyfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unknown subdirective",
			input:   "sso_attributes {\n\tfoo bar\n}",
			wantErr: "unrecognized subdirective",
		},
		{
			name:    "bad mode",
			input:   "sso_attributes {\n\tmode cookie\n}",
			wantErr: "mode must be",
		},
		{
			name:    "bad metrics",
			input:   "sso_attributes {\n\tmetrics maybe\n}",
			wantErr: "metrics must be",
		},
		{
			name:    "missing key_file argument",
			input:   "sso_attributes {\n\tkey_file\n}",
			wantErr: "wrong argument count",
		},
		{
			name:    "empty request_attributes",
			input:   "sso_attributes {\n\trequest_attributes\n}",
			wantErr: "wrong argument count",
		},
		{
			name:    "size mismatch",
			input:   "sso_attributes {\n\trequest_attributes A B\n\tassertion_attributes uid\n}",
			wantErr: "size of request_attributes",
		},
		{
			name:    "missing assertion list",
			input:   "sso_attributes {\n\trequest_attributes A\n}",
			wantErr: "no value defined for assertion_attributes",
		},
		{
			name:    "empty bracket name",
			input:   "sso_attributes {\n\trequest_attributes A\n\tassertion_attributes []@vt.edu\n}",
			wantErr: "empty attribute name",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s SSOAttributes
			err := s.UnmarshalCaddyfile(caddyfile.NewTestDispenser(tc.input))
			if err == nil {
				t.Fatal("UnmarshalCaddyfile() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want containing %q", err.Error(), tc.wantErr)
			}
		})
	}
}
