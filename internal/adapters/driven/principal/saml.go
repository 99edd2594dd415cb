package principal

import (
	"github.com/crewjam/saml"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// FromSAMLAssertion builds a principal from an already validated SAML
// assertion. Attributes are keyed by FriendlyName when present, otherwise by
// Name, and always keep all values as a sequence.
func FromSAMLAssertion(assertion *saml.Assertion) *domain.Principal {
	if assertion == nil {
		return nil
	}

	p := &domain.Principal{
		Attributes: make(domain.PrincipalAttributes),
	}
	if assertion.Subject != nil && assertion.Subject.NameID != nil {
		p.Subject = assertion.Subject.NameID.Value
	}
	p.Issuer = assertion.Issuer.Value

	for _, stmt := range assertion.AttributeStatements {
		for _, attr := range stmt.Attributes {
			key := attr.FriendlyName
			if key == "" {
				key = attr.Name
			}
			if key == "" {
				continue
			}
			values := make([]string, 0, len(attr.Values))
			for _, v := range attr.Values {
				values = append(values, v.Value)
			}
			// A repeated attribute accumulates values in document order.
			if existing, ok := p.Attributes[key]; ok {
				values = append(existing.Values(), values...)
			}
			p.Attributes[key] = domain.Sequence(values...)
		}
	}
	return p
}
