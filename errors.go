package caddyssoattrs

import (
	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// Re-export error types from domain package
type ErrorCode = domain.ErrorCode
type AppError = domain.AppError

// Re-export error code constants
const (
	ErrCodeConfigMissing = domain.ErrCodeConfigMissing
	ErrCodeConfigInvalid = domain.ErrCodeConfigInvalid
)

// Re-export error constructors and sentinels
var (
	ConfigError        = domain.ConfigError
	InvalidConfigError = domain.InvalidConfigError
	IsConfigError      = domain.IsConfigError

	ErrEmptyAttributeName = domain.ErrEmptyAttributeName
	ErrUnmatchedBracket   = domain.ErrUnmatchedBracket
	ErrLengthMismatch     = domain.ErrLengthMismatch
)
