package principal

import (
	"context"
	"net/http"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// contextKey is the context key for a request-scoped principal.
type contextKey struct{}

// WithPrincipal returns a copy of ctx carrying p. Upstream SSO handlers
// call this after validating an assertion.
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the request-scoped principal, or nil.
func FromContext(ctx context.Context) *domain.Principal {
	p, _ := ctx.Value(contextKey{}).(*domain.Principal)
	return p
}

// ContextSource reads request-scoped principals from the request context.
type ContextSource struct{}

// NewContextSource creates a request-scope principal source.
func NewContextSource() *ContextSource {
	return &ContextSource{}
}

// Principal implements ports.PrincipalSource.
func (ContextSource) Principal(r *http.Request) (*domain.Principal, error) {
	if p := FromContext(r.Context()); p != nil {
		return p, nil
	}
	return nil, ports.ErrNoPrincipal
}

// Ensure ContextSource implements ports.PrincipalSource
var _ ports.PrincipalSource = ContextSource{}
