package principal

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// CookieStore implements PrincipalStore using JWT tokens.
// Tokens are signed with RSA (RS256) and are stateless.
type CookieStore struct {
	privateKey *rsa.PrivateKey
	duration   time.Duration
}

// principalClaims defines the JWT claims structure for session principals.
type principalClaims struct {
	jwt.RegisteredClaims
	Attributes map[string]claimValue `json:"attrs,omitempty"`
}

// claimValue keeps the scalar/sequence shape of an attribute across the
// JSON round trip: scalars encode as strings, sequences as arrays.
type claimValue struct {
	domain.AttributeValue
}

func (v claimValue) MarshalJSON() ([]byte, error) {
	if v.IsSequence() {
		return json.Marshal(v.Values())
	}
	s, _ := v.First()
	return json.Marshal(s)
}

func (v *claimValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.AttributeValue = domain.Scalar(s)
		return nil
	}
	var vs []string
	if err := json.Unmarshal(data, &vs); err != nil {
		return fmt.Errorf("attribute must be a string or a list of strings: %w", err)
	}
	v.AttributeValue = domain.Sequence(vs...)
	return nil
}

// NewCookieStore creates a new JWT-based principal store.
func NewCookieStore(privateKey *rsa.PrivateKey, duration time.Duration) *CookieStore {
	return &CookieStore{
		privateKey: privateKey,
		duration:   duration,
	}
}

// Create generates a signed JWT token carrying the principal.
func (s *CookieStore) Create(p *domain.Principal) (string, error) {
	if p == nil {
		return "", errors.New("principal is nil")
	}
	now := time.Now()
	claims := principalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			Issuer:    p.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
		},
	}
	if len(p.Attributes) > 0 {
		claims.Attributes = make(map[string]claimValue, len(p.Attributes))
		for k, v := range p.Attributes {
			claims.Attributes[k] = claimValue{v}
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// Get validates a JWT token and returns the principal.
func (s *CookieStore) Get(token string) (*domain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &principalClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil {
		return nil, ports.ErrNoPrincipal
	}

	claims, ok := parsed.Claims.(*principalClaims)
	if !ok || !parsed.Valid {
		return nil, ports.ErrNoPrincipal
	}

	attrs := make(domain.PrincipalAttributes, len(claims.Attributes))
	for k, v := range claims.Attributes {
		attrs[k] = v.AttributeValue
	}

	p := &domain.Principal{
		Subject:    claims.Subject,
		Issuer:     claims.Issuer,
		Attributes: attrs,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// CookieSource reads session-scoped principals from a named cookie.
type CookieSource struct {
	cookieName string
	store      ports.PrincipalStore
}

// NewCookieSource creates a source that validates the named cookie with store.
func NewCookieSource(cookieName string, store ports.PrincipalStore) *CookieSource {
	return &CookieSource{cookieName: cookieName, store: store}
}

// Principal implements ports.PrincipalSource. A missing cookie means there is
// no session, which is reported as ErrNoPrincipal.
func (c *CookieSource) Principal(r *http.Request) (*domain.Principal, error) {
	if c.store == nil {
		return nil, ports.ErrNoPrincipal
	}
	cookie, err := r.Cookie(c.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ports.ErrNoPrincipal
	}
	return c.store.Get(cookie.Value)
}

// LoadPrivateKey loads an RSA private key from a PEM file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	// Try PKCS8 first (modern format), then PKCS1 (legacy RSA format)
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		return rsaKey, nil
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("key is not RSA")
	}

	return rsaKey, nil
}

// Ensure CookieStore implements ports.PrincipalStore
var _ ports.PrincipalStore = (*CookieStore)(nil)

// Ensure CookieSource implements ports.PrincipalSource
var _ ports.PrincipalSource = (*CookieSource)(nil)
