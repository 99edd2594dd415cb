package caddy

import (
	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"

	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/principal"
)

// NewSSOAttributesForTest creates an SSOAttributes instance with injected
// dependencies and without Provision. The request scope reads
// principal.WithPrincipal; sessionSource may be nil.
// This constructor is intended for testing purposes only.
func NewSSOAttributesForTest(
	config Config,
	b domain.Bindings,
	sessionSource ports.PrincipalSource,
) *SSOAttributes {
	config.SetDefaults()

	s := &SSOAttributes{
		Config: config,
	}
	s.SetBindings(b)
	s.SetRequestSource(principal.NewContextSource())
	if sessionSource != nil {
		s.SetSessionSource(sessionSource)
	}
	return s
}
