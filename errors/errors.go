// Package errors provides error handling for vkgen.
//
// It re-exports github.com/cockroachdb/errors so every package gets stack
// traces, wrapping and user hints from one import, and defines the three
// error families the generator distinguishes:
//
//   - lookup errors: an expected element (parameter, handle, command) was
//     absent. Probe sites convert these into a boolean.
//   - structural errors: the registry contains something the generator
//     cannot model. Loading logs them and skips the element.
//   - configuration errors: bad paths, options or profiles. Always fatal.
//
// Usage:
//
//	p, err := classify.LastHandleParam(params)
//	if errors.IsLookupError(err) {
//	    return false
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
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// AssertionFailedf marks an internal invariant violation.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors for the generator's error families.
// Wrap these with errors.Wrap() to add context while preserving the family.
var (
	// ErrLookup indicates an element the caller expected was absent
	ErrLookup = New("lookup failed")

	// ErrStructural indicates registry content the generator cannot model
	ErrStructural = New("unsupported registry structure")

	// ErrConfiguration indicates invalid options, paths or profiles
	ErrConfiguration = New("invalid configuration")

	// ErrAlreadyGenerated indicates a single-use resolver was run twice
	ErrAlreadyGenerated = New("resolver already generated")
)

// NewLookupError creates a lookup error naming what was searched and where.
func NewLookupError(what, where string) error {
	return Wrapf(ErrLookup, "%s not found in %s", what, where)
}

// NewStructuralError creates a structural error with a formatted message
func NewStructuralError(format string, args ...interface{}) error {
	return Wrap(ErrStructural, Newf(format, args...).Error())
}

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// WrapConfiguration marks an existing error as a configuration error.
func WrapConfiguration(err error, context string) error {
	if err == nil {
		return nil
	}
	return crdb.WithSecondaryError(Wrap(ErrConfiguration, context), err)
}

// IsLookupError checks if an error is or wraps ErrLookup
func IsLookupError(err error) bool {
	return err != nil && Is(err, ErrLookup)
}

// IsStructuralError checks if an error is or wraps ErrStructural
func IsStructuralError(err error) bool {
	return err != nil && Is(err, ErrStructural)
}

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}
