package caddy

import (
	"fmt"
	"time"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// Mode selects how evaluated bindings are exposed to downstream handlers.
const (
	// ModeHeader layers values over the request headers.
	ModeHeader = "header"

	// ModeAttribute stores values as request-scoped variables.
	ModeAttribute = "attribute"
)

// Config holds the configuration for the SSO attributes handler.
type Config struct {
	// RequestAttributes is a whitespace-delimited list of destination
	// names (header or request attribute names).
	// Example: "UNIQUE_ID REMOTE_USER DISTINGUISHED_NAME"
	RequestAttributes string `json:"request_attributes,omitempty"`

	// AssertionAttributes is a whitespace-delimited list of attribute names
	// or expressions, one per entry in RequestAttributes.
	// Example: "uid [user]@vt.edu uid=[uid],ou=people,dc=vt,dc=edu"
	// The attribute name in an expression must be enclosed in brackets.
	AssertionAttributes string `json:"assertion_attributes,omitempty"`

	// BindingsFile is the path to a JSON or YAML file holding the two lists.
	// Mutually exclusive with RequestAttributes/AssertionAttributes.
	BindingsFile string `json:"bindings_file,omitempty"`

	// Mode is "header" (default) or "attribute".
	Mode string `json:"mode,omitempty"`

	// SessionCookieName is the cookie holding a session-scoped principal.
	// Defaults to "sso_session".
	SessionCookieName string `json:"session_cookie_name,omitempty"`

	// SessionDuration is how long issued session cookies last (e.g., "8h").
	// Defaults to "8h" if not specified.
	SessionDuration string `json:"session_duration,omitempty"`

	// KeyFile is the path to the RSA private key (PEM format) that signs
	// session cookies. Without it only request-scoped principals are used.
	KeyFile string `json:"key_file,omitempty"`

	// MetricsEnabled enables Prometheus metrics exposition.
	// Metrics are exposed via Caddy's admin API /metrics endpoint.
	// Defaults to false.
	MetricsEnabled bool `json:"metrics_enabled,omitempty"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	inline := c.RequestAttributes != "" || c.AssertionAttributes != ""
	if inline && c.BindingsFile != "" {
		return domain.InvalidConfigError("only one of bindings_file or request_attributes/assertion_attributes can be specified", nil)
	}

	if c.BindingsFile == "" {
		if _, err := domain.NewBindings(c.RequestAttributes, c.AssertionAttributes); err != nil {
			return err
		}
	}

	switch c.Mode {
	case "", ModeHeader, ModeAttribute:
	default:
		return domain.InvalidConfigError(fmt.Sprintf("mode must be %q or %q, got %q", ModeHeader, ModeAttribute, c.Mode), nil)
	}

	if c.SessionDuration != "" {
		if _, err := time.ParseDuration(c.SessionDuration); err != nil {
			return domain.InvalidConfigError("invalid session_duration", err)
		}
	}

	if c.SessionCookieName != "" && !domain.IsValidFieldName(c.SessionCookieName) {
		return domain.InvalidConfigError(fmt.Sprintf("invalid session_cookie_name %q", c.SessionCookieName), nil)
	}

	return nil
}

// SetDefaults applies default values to unset configuration fields.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = ModeHeader
	}
	if c.SessionCookieName == "" {
		c.SessionCookieName = "sso_session"
	}
	if c.SessionDuration == "" {
		c.SessionDuration = "8h"
	}
}
