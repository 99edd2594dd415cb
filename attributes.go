package caddyssoattrs

import (
	"github.com/philiph/caddy-sso-attrs/internal/adapters/driven/bindings"
	"github.com/philiph/caddy-sso-attrs/internal/core/domain"
)

// Re-export attribute and binding types from domain package
type AttributeValue = domain.AttributeValue
type PrincipalAttributes = domain.PrincipalAttributes
type AttributeExpression = domain.AttributeExpression
type AttributeBinding = domain.AttributeBinding
type Bindings = domain.Bindings
type EvaluatedBinding = domain.EvaluatedBinding

// BindingsFile is the on-disk form of a binding list.
type BindingsFile = bindings.File

const Placeholder = domain.Placeholder

var (
	Scalar              = domain.Scalar
	Sequence            = domain.Sequence
	AttributesFromMulti = domain.AttributesFromMulti
	IsValidFieldName    = domain.IsValidFieldName

	ParseExpression     = domain.ParseExpression
	MustParseExpression = domain.MustParseExpression
	NewBindings         = domain.NewBindings
	BuildBindings       = domain.BuildBindings

	LoadBindingsFile = bindings.LoadFile
	LoadBindings     = bindings.Load
)
