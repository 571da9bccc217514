package logging

// Field names for structured logging.
const (
	FieldError   = "error"
	FieldBaseDir = "base_dir"
	FieldElement = "element"
	FieldRef     = "ref"
	FieldMIME    = "mime"
	FieldBytes   = "bytes"
	FieldCount   = "count"
	FieldURL     = "url"
	FieldStatus  = "status"
)
