package caddyssoattrs

import (
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driving/caddy"
)

// Re-export Config and related constants from adapter
type Config = caddy.Config

const (
	ModeHeader    = caddy.ModeHeader
	ModeAttribute = caddy.ModeAttribute

	MaxHeaderValueLength = caddy.MaxHeaderValueLength
)
