package ports

import (
	"errors"
	"net/http"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// PrincipalSource finds the authenticated principal for a request.
// Implementations must be safe for concurrent use.
type PrincipalSource interface {
	// Principal returns the principal attached to r, or ErrNoPrincipal if
	// the source has none. Any other error means the source was unusable;
	// callers treat it as "no principal" and keep serving the request.
	Principal(r *http.Request) (*domain.Principal, error)
}

// PrincipalStore issues and validates session-scoped principals.
type PrincipalStore interface {
	// Create serializes a principal into an opaque session token.
	Create(p *domain.Principal) (string, error)

	// Get validates a token and returns its principal. Returns
	// ErrNoPrincipal if the token is invalid or expired.
	Get(token string) (*domain.Principal, error)
}

// ErrNoPrincipal is returned when no authenticated principal is available.
var ErrNoPrincipal = errors.New("no principal")
