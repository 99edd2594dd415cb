package caddy

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/caddyserver/caddy/v2"
	"github.com/caddyserver/caddy/v2/caddyconfig/caddyfile"
	"github.com/caddyserver/caddy/v2/modules/caddyhttp"
	"go.uber.org/zap"

	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"

	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/bindings"
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/metrics"
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/principal"
)

// SSOAttributes is a Caddy HTTP handler module that copies attributes of the
// authenticated SSO principal into request headers or request variables for
// downstream handlers.
type SSOAttributes struct {
	Config

	// Runtime state (not serialized)
	bindings        domain.Bindings
	requestSource   ports.PrincipalSource
	sessionSource   ports.PrincipalSource
	sessionStore    ports.PrincipalStore
	sessionDuration time.Duration
	logger          *zap.Logger
	metricsRecorder ports.MetricsRecorder
}

// CaddyModule returns the Caddy module information.
func (SSOAttributes) CaddyModule() caddy.ModuleInfo {
	return caddy.ModuleInfo{
		ID:  "http.handlers.sso_attributes",
		New: func() caddy.Module { return new(SSOAttributes) },
	}
}

// Provision sets up the module.
func (s *SSOAttributes) Provision(ctx caddy.Context) error {
	s.logger = ctx.Logger()
	s.logger.Debug("provisioning sso attributes")

	s.Config.SetDefaults()

	// Initialize metrics recorder
	s.initMetricsRecorder()

	b, err := s.loadBindings()
	if err != nil {
		return err
	}
	s.bindings = b

	duration, err := time.ParseDuration(s.SessionDuration)
	if err != nil {
		return fmt.Errorf("parse session duration: %w", err)
	}
	s.sessionDuration = duration

	s.requestSource = principal.NewContextSource()

	// Session scope is only available with a signing key
	if s.KeyFile != "" {
		key, err := principal.LoadPrivateKey(s.KeyFile)
		if err != nil {
			return fmt.Errorf("load session key: %w", err)
		}
		store := principal.NewCookieStore(key, s.sessionDuration)
		s.sessionStore = store
		s.sessionSource = principal.NewCookieSource(s.SessionCookieName, store)
	}

	s.logger.Info("sso attributes provisioned",
		zap.Int("binding_count", len(s.bindings)),
		zap.String("mode", s.Mode),
		zap.Bool("session_scope", s.sessionSource != nil))

	return nil
}

// loadBindings builds the bindings from the inline lists or the bindings file.
func (s *SSOAttributes) loadBindings() (domain.Bindings, error) {
	if s.BindingsFile != "" {
		if s.RequestAttributes != "" || s.AssertionAttributes != "" {
			return nil, domain.InvalidConfigError("only one of bindings_file or request_attributes/assertion_attributes can be specified", nil)
		}
		return bindings.Load(s.BindingsFile)
	}
	b, err := domain.NewBindings(s.RequestAttributes, s.AssertionAttributes)
	if err != nil {
		return nil, fmt.Errorf("build bindings: %w", err)
	}
	return b, nil
}

// Validate ensures the module's configuration is valid.
func (s *SSOAttributes) Validate() error {
	return s.Config.Validate()
}

// ServeHTTP implements caddyhttp.MiddlewareHandler.
//
// The next handler is always called. When a principal is found, its
// attributes are evaluated against the bindings and exposed according to
// the configured mode; otherwise the request passes through unchanged.
func (s *SSOAttributes) ServeHTTP(w http.ResponseWriter, r *http.Request, next caddyhttp.Handler) error {
	p, source := s.findPrincipal(r)
	s.getMetricsRecorder().RecordRequest(source.String())

	if p == nil {
		return next.ServeHTTP(w, r)
	}

	results := s.bindings.Evaluate(p.Attributes)
	logger := s.getLogger()
	recorder := s.getMetricsRecorder()
	for _, res := range results {
		recorder.RecordBinding(res.Destination, res.Present)
		if !res.Present {
			logger.Debug("attribute absent",
				zap.String("destination", res.Destination),
				zap.String("subject", p.Subject))
		}
	}

	if s.Mode == ModeAttribute {
		r = setRequestAttributes(r, results)
	} else {
		r = decorateHeaders(r, results)
	}

	return next.ServeHTTP(w, r)
}

// findPrincipal looks for a principal in request scope first, then in
// session scope. Source errors are logged and treated as "no principal".
func (s *SSOAttributes) findPrincipal(r *http.Request) (*domain.Principal, domain.PrincipalSource) {
	scopes := []struct {
		source ports.PrincipalSource
		label  domain.PrincipalSource
	}{
		{s.requestSource, domain.PrincipalSourceRequest},
		{s.sessionSource, domain.PrincipalSourceSession},
	}

	for _, scope := range scopes {
		if scope.source == nil {
			continue
		}
		p, err := scope.source.Principal(r)
		if err != nil {
			if !errors.Is(err, ports.ErrNoPrincipal) {
				s.getLogger().Debug("principal lookup failed",
					zap.String("scope", scope.label.String()),
					zap.Error(err))
			}
			continue
		}
		if p != nil {
			return p, scope.label
		}
	}
	return nil, domain.PrincipalSourceNone
}

// IssueSessionCookie mints a session cookie carrying p, so later requests
// find the principal in session scope. Requires key_file.
func (s *SSOAttributes) IssueSessionCookie(w http.ResponseWriter, r *http.Request, p *domain.Principal) error {
	if s.sessionStore == nil {
		return domain.ConfigError("session scope requires key_file")
	}
	token, err := s.sessionStore.Create(p)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.setSessionCookie(w, r, token)
	return nil
}

// setSessionCookie sets the session cookie on the response.
func (s *SSOAttributes) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessionDuration.Seconds()),
	})
}

// getLogger returns the logger, or a no-op logger if not set.
// This allows tests to run without calling Provision().
func (s *SSOAttributes) getLogger() *zap.Logger {
	if s.logger != nil {
		return s.logger
	}
	return zap.NewNop()
}

// getMetricsRecorder returns the metrics recorder, or a no-op recorder if not set.
// This allows tests to run without calling Provision().
func (s *SSOAttributes) getMetricsRecorder() ports.MetricsRecorder {
	if s.metricsRecorder != nil {
		return s.metricsRecorder
	}
	return metrics.NewNoopMetricsRecorder()
}

// initMetricsRecorder initializes the metrics recorder based on configuration.
func (s *SSOAttributes) initMetricsRecorder() {
	if s.MetricsEnabled {
		s.metricsRecorder = metrics.NewPrometheusMetricsRecorder()
	} else {
		s.metricsRecorder = metrics.NewNoopMetricsRecorder()
	}
}

// Bindings returns the provisioned bindings.
func (s *SSOAttributes) Bindings() domain.Bindings {
	return s.bindings
}

// SetBindings sets the bindings. For testing purposes.
func (s *SSOAttributes) SetBindings(b domain.Bindings) {
	s.bindings = b
}

// SetRequestSource sets the request-scope principal source. For testing purposes.
func (s *SSOAttributes) SetRequestSource(src ports.PrincipalSource) {
	s.requestSource = src
}

// SetSessionSource sets the session-scope principal source. For testing purposes.
func (s *SSOAttributes) SetSessionSource(src ports.PrincipalSource) {
	s.sessionSource = src
}

// SetSessionStore sets the store used by IssueSessionCookie.
func (s *SSOAttributes) SetSessionStore(store ports.PrincipalStore) {
	s.sessionStore = store
}

// SetSessionDuration sets the session cookie lifetime for testing.
func (s *SSOAttributes) SetSessionDuration(d time.Duration) {
	s.sessionDuration = d
}

// SetLogger sets the logger for testing.
func (s *SSOAttributes) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// SetMetricsRecorder sets the metrics recorder for testing.
func (s *SSOAttributes) SetMetricsRecorder(recorder ports.MetricsRecorder) {
	s.metricsRecorder = recorder
}

// Interface guards
var (
	_ caddy.Module                = (*SSOAttributes)(nil)
	_ caddy.Provisioner           = (*SSOAttributes)(nil)
	_ caddy.Validator             = (*SSOAttributes)(nil)
	_ caddyhttp.MiddlewareHandler = (*SSOAttributes)(nil)
	_ caddyfile.Unmarshaler       = (*SSOAttributes)(nil)
)
