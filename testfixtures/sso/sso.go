// Package sso provides an upstream single-sign-on stand-in for integration
// testing. It builds SAML assertions with crewjam/saml types, attaches the
// resulting principal the way a real SSO handler would, and echoes what the
// downstream handler received.
package sso

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
	"github.com/crewjam/saml"

	caddyssoattrs "github.com/philiph/caddy-sso-attrs"
)

// Attribute is one released SAML attribute.
type Attribute struct {
	Name         string
	FriendlyName string
	Values       []string
}

// NewAssertion builds an assertion as an IdP would release it after
// validation. Signing is not modelled.
func NewAssertion(issuer, subject string, attrs ...Attribute) *saml.Assertion {
	stmt := saml.AttributeStatement{}
	for _, a := range attrs {
		attr := saml.Attribute{
			Name:         a.Name,
			FriendlyName: a.FriendlyName,
			NameFormat:   "urn:oasis:names:tc:SAML:2.0:attrname-format:uri",
		}
		for _, v := range a.Values {
			attr.Values = append(attr.Values, saml.AttributeValue{Type: "xs:string", Value: v})
		}
		stmt.Attributes = append(stmt.Attributes, attr)
	}

	return &saml.Assertion{
		ID:           "id-test-assertion",
		IssueInstant: time.Now(),
		Version:      "2.0",
		Issuer:       saml.Issuer{Value: issuer},
		Subject: &saml.Subject{
			NameID: &saml.NameID{Value: subject},
		},
		AttributeStatements: []saml.AttributeStatement{stmt},
	}
}

// GenerateKey creates an RSA key for signing session cookies.
func GenerateKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

// WriteKeyFile writes key as a PKCS8 PEM file under t.TempDir and returns
// its path, suitable for key_file.
func WriteKeyFile(t testing.TB, key *rsa.PrivateKey) string {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "session-key.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}
	return path
}

// Upstream stands in for the SSO handler that validated Assertion. It
// attaches the principal to the request scope. A nil Assertion means the
// user is not logged in.
type Upstream struct {
	Assertion *saml.Assertion
}

// ServeHTTP implements caddyhttp.MiddlewareHandler.
func (u Upstream) ServeHTTP(w http.ResponseWriter, r *http.Request, next caddyhttp.Handler) error {
	if u.Assertion != nil {
		p := caddyssoattrs.FromSAMLAssertion(u.Assertion)
		r = r.WithContext(caddyssoattrs.WithPrincipal(r.Context(), p))
	}
	return next.ServeHTTP(w, r)
}

// Echo is the JSON body written by the echo handler.
type Echo struct {
	Headers map[string][]string `json:"headers"`
	Vars    map[string]string   `json:"vars"`
}

// EchoHandler writes the request headers and request variables it received.
func EchoHandler() caddyhttp.Handler {
	return caddyhttp.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(Echo{
			Headers: r.Header,
			Vars:    caddyssoattrs.RequestAttributes(r),
		})
	})
}

// Chain composes middleware in order around final.
func Chain(final caddyhttp.Handler, mws ...caddyhttp.MiddlewareHandler) caddyhttp.Handler {
	h := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], h
		h = caddyhttp.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			return mw.ServeHTTP(w, r, next)
		})
	}
	return h
}

// NewServer starts a test server running mws in front of the echo handler.
// Handler errors become 500 responses. Call Close() when done.
func NewServer(t testing.TB, mws ...caddyhttp.MiddlewareHandler) *httptest.Server {
	t.Helper()

	h := Chain(EchoHandler(), mws...)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.ServeHTTP(w, r); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
}
