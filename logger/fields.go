package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across vkgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldNamespace = "namespace"

	// Registry elements
	FieldCommand   = "command"
	FieldHandle    = "handle"
	FieldType      = "type"
	FieldExtension = "extension"
	FieldPlatform  = "platform"
	FieldFeature   = "feature"
	FieldCategory  = "category"

	// Synthesis
	FieldStrategy  = "strategy"
	FieldSignature = "signature"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"

	// Counts
	FieldCount      = "count"
	FieldTotalCount = "total_count"

	// Errors
	FieldError = "error"

	// Timing
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Pass struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewPass() *Pass {
//	    return &Pass{logger: logger.ComponentLogger("generator.pass")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	cmdLogger := logger.ChildLogger(base, logger.FieldCommand, cmd.Name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
