package logger

// Standard field names for consistent structured logging across paramspace.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Attribute routing
	FieldAttr  = "attr"
	FieldType  = "type"
	FieldOwner = "owner"

	// Family definition files
	FieldFile  = "file"
	FieldCount = "count"

	// Errors
	FieldError = "error"
)
