package caddyssoattrs

import (
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/principal"
	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// Re-export principal types
type Principal = domain.Principal
type PrincipalSourceName = domain.PrincipalSource

// Re-export port interfaces
type PrincipalSource = ports.PrincipalSource
type PrincipalStore = ports.PrincipalStore

// Re-export adapters
type CookieStore = principal.CookieStore
type CookieSource = principal.CookieSource
type ContextSource = principal.ContextSource

const (
	PrincipalSourceRequest = domain.PrincipalSourceRequest
	PrincipalSourceSession = domain.PrincipalSourceSession
	PrincipalSourceNone    = domain.PrincipalSourceNone
)

var ErrNoPrincipal = ports.ErrNoPrincipal

var (
	WithPrincipal        = principal.WithPrincipal
	PrincipalFromContext = principal.FromContext
	FromSAMLAssertion    = principal.FromSAMLAssertion

	NewContextSource = principal.NewContextSource
	NewCookieStore   = principal.NewCookieStore
	NewCookieSource  = principal.NewCookieSource
	LoadPrivateKey   = principal.LoadPrivateKey
)
