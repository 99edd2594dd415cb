package domain

import "time"

// Principal is the authenticated identity produced by an upstream
// single-sign-on component. This filter never authenticates anyone itself;
// it only reads the attribute bag.
type Principal struct {
	// Subject is the principal identifier (CAS user, SAML NameID).
	Subject string

	// Attributes are the released identity attributes.
	Attributes PrincipalAttributes

	// Issuer identifies the SSO system that asserted the identity.
	Issuer string

	// ExpiresAt is when a session-scoped principal stops being valid.
	// Zero for request-scoped principals.
	ExpiresAt time.Time
}

// PrincipalSource names where a principal was found for a request.
type PrincipalSource string

const (
	PrincipalSourceRequest PrincipalSource = "request"
	PrincipalSourceSession PrincipalSource = "session"
	PrincipalSourceNone    PrincipalSource = "none"
)

// String returns the source name.
func (s PrincipalSource) String() string {
	return string(s)
}
