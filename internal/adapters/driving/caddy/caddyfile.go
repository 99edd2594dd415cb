package caddy

import (
	"strings"

	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/caddyconfig/httpcaddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// ParseCaddyfile sets up the handler from Caddyfile tokens.
//
// Syntax:
//
//	sso_attributes {
//	    request_attributes <name>...
//	    assertion_attributes <expression>...
//	    bindings_file <path>
//	    mode header|attribute
//	    session_cookie_name <name>
//	    session_duration <duration>
//	    key_file <path>
//	    metrics on|off
//	}
//
// request_attributes and assertion_attributes may be repeated; their tokens
// accumulate in order.
func ParseCaddyfile(h httpcaddyfile.Helper) (caddyhttp.MiddlewareHandler, error) {
	var s SSOAttributes
	err := s.UnmarshalCaddyfile(h.Dispenser)
	return &s, err
}

// UnmarshalCaddyfile implements caddyfile.Unmarshaler.
func (s *SSOAttributes) UnmarshalCaddyfile(d *caddyfile.Dispenser) error {
	d.Next() // consume directive name

	for d.NextBlock(0) {
		switch d.Val() {
		case "request_attributes":
			args := d.RemainingArgs()
			if len(args) == 0 {
				return d.ArgErr()
			}
			s.RequestAttributes = appendTokens(s.RequestAttributes, args)

		case "assertion_attributes":
			args := d.RemainingArgs()
			if len(args) == 0 {
				return d.ArgErr()
			}
			s.AssertionAttributes = appendTokens(s.AssertionAttributes, args)

		case "bindings_file":
			if !d.NextArg() {
				return d.ArgErr()
			}
			s.BindingsFile = d.Val()

		case "mode":
			if !d.NextArg() {
				return d.ArgErr()
			}
			switch d.Val() {
			case ModeHeader, ModeAttribute:
				s.Mode = d.Val()
			default:
				return d.Errf("mode must be %q or %q, got %q", ModeHeader, ModeAttribute, d.Val())
			}

		case "session_cookie_name":
			if !d.NextArg() {
				return d.ArgErr()
			}
			s.SessionCookieName = d.Val()

		case "session_duration":
			if !d.NextArg() {
				return d.ArgErr()
			}
			s.SessionDuration = d.Val()

		case "key_file":
			if !d.NextArg() {
				return d.ArgErr()
			}
			s.KeyFile = d.Val()

		case "metrics":
			if !d.NextArg() {
				return d.ArgErr()
			}
			switch d.Val() {
			case "enabled", "on":
				s.MetricsEnabled = true
			case "disabled", "off":
				s.MetricsEnabled = false
			default:
				return d.Errf("metrics must be 'on' or 'off', got %q", d.Val())
			}

		default:
			return d.Errf("unrecognized subdirective: %s", d.Val())
		}
	}

	// Catch malformed expressions at parse time
	if s.RequestAttributes != "" || s.AssertionAttributes != "" {
		if _, err := domain.NewBindings(s.RequestAttributes, s.AssertionAttributes); err != nil {
			return d.WrapErr(err)
		}
	}

	return nil
}

func appendTokens(list string, tokens []string) string {
	if list == "" {
		return strings.Join(tokens, " ")
	}
	return list + " " + strings.Join(tokens, " ")
}
