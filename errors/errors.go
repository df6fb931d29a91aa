// Package errors provides error handling for paramspace.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := buildFamily(); err != nil {
//	    return errors.Wrap(err, "failed to build type family")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrConstruction) {
//	    // handle construction failure
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll

	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across paramspace.
// Use these with errors.Is() for type-safe error checking; the structured
// error kinds in the param package are all marked with one of them.
var (
	// ErrConstruction indicates a type definition was rejected by the
	// registry builder. Every construction-time failure wraps it.
	ErrConstruction = New("type construction failed")

	// ErrAttribute indicates an attribute-access failure (the family
	// analogue of AttributeError): protection violations and lookups of
	// absent attributes both wrap it.
	ErrAttribute = New("attribute error")
)

// IsConstructionError checks if an error is or wraps ErrConstruction.
func IsConstructionError(err error) bool {
	return err != nil && Is(err, ErrConstruction)
}

// IsAttributeError checks if an error is or wraps ErrAttribute.
func IsAttributeError(err error) bool {
	return err != nil && Is(err, ErrAttribute)
}
