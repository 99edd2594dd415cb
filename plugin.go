// Package caddyssoattrs provides a Caddy v2 handler that copies attributes of
// the authenticated single-sign-on principal into request headers or request
// variables for downstream handlers.
package caddyssoattrs

import (
	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"

	caddyadapter "github.com/philiph/caddy-sso-attrs/internal/adapters/driving/caddy"
)

const Version = "0.1.0"

func init() {
	caddy.RegisterModule(SSOAttributes{})
	httpcaddyfile.RegisterHandlerDirective("sso_attributes", caddyadapter.ParseCaddyfile)
	httpcaddyfile.RegisterDirectiveOrder("sso_attributes", httpcaddyfile.After, "forward_auth")
}

// SSOAttributes is the Caddy module. See the internal adapter for details.
type SSOAttributes = caddyadapter.SSOAttributes

var (
	ParseCaddyfile          = caddyadapter.ParseCaddyfile
	NewSSOAttributesForTest = caddyadapter.NewSSOAttributesForTest
)
