package caddyssoattrs

import (
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driving/caddy"
	"github.com/philiph/caddy-sso-attrs/internal/core/ports"
)

// Re-export request decoration types
type DecoratedRequest = caddy.DecoratedRequest
type ValueIterator = ports.ValueIterator
type HeaderView = ports.HeaderView

var (
	NewDecoratedRequest  = caddy.NewDecoratedRequest
	DecoratedRequestFrom = caddy.DecoratedRequestFrom
	Collect              = caddy.Collect

	GetRequestAttribute = caddy.GetRequestAttribute
	RequestAttributes   = caddy.RequestAttributes
)
